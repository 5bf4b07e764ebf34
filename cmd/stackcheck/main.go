// Command stackcheck validates declarative infrastructure templates.
//
// Usage:
//
//	stackcheck validate template.json     Validate structure and references
//	stackcheck render template.json       Substitute references with values
//	stackcheck diff old.json new.json     Compare two templates
//	stackcheck graph template.json        Generate reference graph
//	stackcheck version                    Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stackcheck",
		Short: "Validate and render infrastructure templates",
		Long: `stackcheck loads infrastructure templates (JSON or YAML), checks their
structure, and verifies that every reference resolves to a declared
parameter or resource.

A template has three sections, each keyed by logical name:

    Parameters:
      LambdaFunctionArn:
        Type: String
    Resources:
      InvokeRole:
        Type: AWS::IAM::Role
    Outputs:
      RoleArn:
        Value: {GetAtt: InvokeRole.Arn}

Validate a template:

    stackcheck validate template.yaml`,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .stackcheck.yaml)")

	rootCmd.AddCommand(
		newValidateCmd(),
		newRenderCmd(),
		newDiffCmd(),
		newGraphCmd(),
		newLintCmd(),
		newListCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stackcheck %s\n", getVersion())
		},
	}
}
