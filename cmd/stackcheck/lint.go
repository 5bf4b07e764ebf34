package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stackcheck "github.com/lex00/stackcheck-go"
	"github.com/lex00/stackcheck-go/internal/lint"
)

// newLintCmd creates the "lint" subcommand backed by cfn-lint.
func newLintCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "lint <template>",
		Short: "Lint a template with cfn-lint rules",
		Long: `Lint runs cfn-lint rules against a template and reports every match.

Exit code 0 when clean, 2 when any error-level issue is found.

Examples:
    stackcheck lint template.yaml
    stackcheck lint template.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(args[0], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: text or json (default from config, then text)")

	return cmd
}

func runLint(path, format string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Format
	}

	result, err := lint.Run(path)
	if err != nil {
		return err
	}

	return outputLintResult(result, format)
}

func outputLintResult(result *stackcheck.LintResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if len(result.Issues) == 0 {
			fmt.Println("No lint issues found")
			return nil
		}

		for _, issue := range result.Issues {
			fmt.Println(formatLintIssue(issue))
		}
		fmt.Printf("\n%d issues\n", len(result.Issues))

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(2)
	}

	return nil
}

// formatLintIssue formats a single issue for display.
func formatLintIssue(issue stackcheck.LintIssue) string {
	if issue.Path != "" {
		return fmt.Sprintf("%s: %s: %s (at %s) [%s]",
			issue.File, issue.Level, issue.Message, issue.Path, issue.Rule)
	}
	return fmt.Sprintf("%s: %s: %s [%s]",
		issue.File, issue.Level, issue.Message, issue.Rule)
}
