package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	stackcheck "github.com/lex00/stackcheck-go"
	"github.com/lex00/stackcheck-go/internal/differ"
)

// newDiffCmd creates the "diff" subcommand for comparing two templates.
func newDiffCmd() *cobra.Command {
	var (
		outputFormat string
		ignoreOrder  bool
	)

	cmd := &cobra.Command{
		Use:   "diff <template1> <template2>",
		Short: "Compare two templates",
		Long: `Diff compares two templates and reports added, removed, and modified
parameters, resources, and outputs.

Examples:
    stackcheck diff old.yaml new.yaml
    stackcheck diff old.json new.yaml --format json --ignore-order`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], outputFormat, ignoreOrder)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: text or json (default from config, then text)")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Treat lists that differ only in element order as equal")

	return cmd
}

func runDiff(path1, path2, format string, ignoreOrder bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Format
	}

	result, err := differ.CompareFiles(path1, path2, differ.Options{IgnoreOrder: ignoreOrder})
	if err != nil {
		return err
	}

	return outputDiffResult(result, format)
}

func outputDiffResult(result *stackcheck.DiffResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Summary.Total == 0 {
			fmt.Println("Templates are identical")
			return nil
		}

		for _, entry := range result.Diff.Added {
			fmt.Printf("+ %s\n", formatDiffEntry(entry))
		}
		for _, entry := range result.Diff.Removed {
			fmt.Printf("- %s\n", formatDiffEntry(entry))
		}
		for _, entry := range result.Diff.Modified {
			fmt.Printf("~ %s\n", formatDiffEntry(entry))
			for _, change := range entry.Changes {
				fmt.Printf("    %s\n", change)
			}
		}

		fmt.Printf("\n%d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}

// formatDiffEntry formats a diff entry as Section/Name with the type when
// one applies.
func formatDiffEntry(entry stackcheck.DiffEntry) string {
	if entry.Type != "" {
		return fmt.Sprintf("%s/%s (%s)", entry.Section, entry.Name, entry.Type)
	}
	return fmt.Sprintf("%s/%s", entry.Section, entry.Name)
}
