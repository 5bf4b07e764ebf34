package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lex00/stackcheck-go/internal/render"
	"github.com/lex00/stackcheck-go/internal/template"
)

// newRenderCmd creates the "render" subcommand for resolving references to values.
func newRenderCmd() *cobra.Command {
	var (
		outputFormat string
		outputPath   string
		valuesPath   string
		paramFlags   []string
		resourceFlag []string
		attrFlags    []string
	)

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template with references resolved",
		Long: `Render substitutes every Ref and GetAtt in a template with a concrete
value and prints the resolved document.

Parameter values come from --param flags, a --values file, the config
file, or the parameter's Default. Resource physical IDs and attribute
values come from --resource and --attr flags or the config file.

Examples:
    stackcheck render template.yaml --param LambdaFunctionArn=arn:aws:lambda:us-east-1:123456789012:function:fn
    stackcheck render template.yaml --values values.yaml
    stackcheck render template.yaml --resource LambdaInvokeRole=invoke-role --attr LambdaInvokeRole.Arn=arn:aws:iam::123456789012:role/invoke-role
    stackcheck render template.yaml --format json -o resolved.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], outputFormat, outputPath, valuesPath, paramFlags, resourceFlag, attrFlags)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: yaml or json (default from config, then yaml)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML or JSON file mapping parameter names to values")
	cmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "Parameter value as Name=Value (repeatable)")
	cmd.Flags().StringArrayVarP(&resourceFlag, "resource", "r", nil, "Resource physical ID as Name=ID (repeatable)")
	cmd.Flags().StringArrayVarP(&attrFlags, "attr", "a", nil, "Attribute value as Name.Attr=Value (repeatable)")

	return cmd
}

func runRender(path, format, outputPath, valuesPath string, paramFlags, resourceFlags, attrFlags []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Format
	}
	if format == "" || format == "text" {
		format = "yaml"
	}

	tmpl, err := template.Load(path)
	if err != nil {
		return err
	}

	vals := render.Values{
		Parameters: map[string]any{},
		Resources:  map[string]string{},
		Attributes: map[string]string{},
	}
	for k, v := range cfg.Parameters {
		vals.Parameters[k] = v
	}
	for k, v := range cfg.Resources {
		vals.Resources[k] = v
	}
	for k, v := range cfg.Attributes {
		vals.Attributes[k] = v
	}

	if valuesPath != "" {
		fileVals, err := loadValuesFile(valuesPath)
		if err != nil {
			return err
		}
		for k, v := range fileVals {
			vals.Parameters[k] = v
		}
	}

	for _, flag := range paramFlags {
		name, value, err := splitAssignment(flag)
		if err != nil {
			return fmt.Errorf("invalid --param %q: %w", flag, err)
		}
		vals.Parameters[name] = value
	}
	for _, flag := range resourceFlags {
		name, value, err := splitAssignment(flag)
		if err != nil {
			return fmt.Errorf("invalid --resource %q: %w", flag, err)
		}
		vals.Resources[name] = value
	}
	for _, flag := range attrFlags {
		name, value, err := splitAssignment(flag)
		if err != nil {
			return fmt.Errorf("invalid --attr %q: %w", flag, err)
		}
		vals.Attributes[name] = value
	}

	resolved, err := render.Render(tmpl, vals)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = template.ToJSON(resolved)
	case "yaml":
		data, err = yaml.Marshal(resolved)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
		fmt.Printf("Rendered template written to %s\n", outputPath)
		return nil
	}

	fmt.Print(string(data))
	return nil
}

// loadValuesFile reads a --values file: a flat mapping of parameter names
// to values, in JSON or YAML.
func loadValuesFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading values file: %w", err)
	}

	var vals map[string]any
	if err := json.Unmarshal(data, &vals); err != nil {
		if err := yaml.Unmarshal(data, &vals); err != nil {
			return nil, fmt.Errorf("values file %s: not valid JSON or YAML", path)
		}
	}
	return vals, nil
}

// splitAssignment parses a Name=Value flag argument.
func splitAssignment(s string) (string, string, error) {
	name, value, found := strings.Cut(s, "=")
	if !found || name == "" {
		return "", "", fmt.Errorf("expected Name=Value")
	}
	return name, value, nil
}
