package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	stackcheck "github.com/lex00/stackcheck-go"
	"github.com/lex00/stackcheck-go/internal/template"
)

// newListCmd creates the "list" subcommand for enumerating template resources.
func newListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list <template>",
		Short: "List the resources declared in a template",
		Long: `List prints every resource in a template with its type, sorted by name.

Examples:
    stackcheck list template.yaml
    stackcheck list template.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args[0], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: text or json (default from config, then text)")

	return cmd
}

func runList(path, format string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Format
	}

	tmpl, err := template.Load(path)
	if err != nil {
		return err
	}

	result := stackcheck.ListResult{}
	for name, res := range tmpl.Resources {
		result.Resources = append(result.Resources, stackcheck.ListResource{
			Name: name,
			Type: res.Type,
		})
	}
	sort.Slice(result.Resources, func(i, j int) bool {
		return result.Resources[i].Name < result.Resources[j].Name
	})

	return outputListResult(result, format)
}

func outputListResult(result stackcheck.ListResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if len(result.Resources) == 0 {
			fmt.Println("No resources declared")
			return nil
		}

		for _, res := range result.Resources {
			fmt.Printf("%-30s %s\n", res.Name, res.Type)
		}
		fmt.Printf("\n%d resources\n", len(result.Resources))

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
