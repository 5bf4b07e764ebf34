package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stackcheck "github.com/lex00/stackcheck-go"
	"github.com/lex00/stackcheck-go/internal/schema"
	"github.com/lex00/stackcheck-go/internal/template"
)

// newValidateCmd creates the "validate" subcommand for checking template validity.
func newValidateCmd() *cobra.Command {
	var (
		outputFormat string
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "validate <template>",
		Short: "Validate template structure and references",
		Long: `Validate parses a template and checks it for issues.

Checks performed:
  - Structure: the Parameters, Resources, and Outputs sections are present
    and well formed, and parameter types are recognized
  - Reference validity: every Ref and GetAtt points to a declared
    parameter or resource
  - Schema: resources match the built-in resource type schemas

Exit code 0 on success, 1 on any validation failure.

Examples:
    stackcheck validate template.yaml
    stackcheck validate template.json --format json --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], outputFormat, strict)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: text or json (default from config, then text)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Warn about properties the schema does not know")

	return cmd
}

// runValidate loads and validates the template, reporting the result.
func runValidate(path, format string, strict bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Format
	}

	result := stackcheck.ValidateResult{Success: true}

	tmpl, err := template.Load(path)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Resources = len(tmpl.Resources)
		result.Parameters = len(tmpl.Parameters)
		result.Outputs = len(tmpl.Outputs)

		schemaResult := schema.ValidateTemplate(tmpl, schema.Options{Strict: strict})
		for _, issue := range schemaResult.Errors {
			result.Success = false
			result.Errors = append(result.Errors, issue.String())
		}
		for _, issue := range schemaResult.Warnings {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return outputValidateResult(result, format)
}

func outputValidateResult(result stackcheck.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		for _, warning := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", warning)
		}

		if result.Success {
			fmt.Printf("Validation passed: %d resources, %d parameters, %d outputs OK\n",
				result.Resources, result.Parameters, result.Outputs)
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  ERROR: %s\n", errMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
