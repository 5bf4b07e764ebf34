package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/stackcheck-go/internal/graph"
	"github.com/lex00/stackcheck-go/internal/template"
)

// newGraphCmd creates the "graph" subcommand for dependency visualization.
func newGraphCmd() *cobra.Command {
	var (
		outputFormat      string
		outputPath        string
		includeParameters bool
		clusterByService  bool
	)

	cmd := &cobra.Command{
		Use:   "graph <template>",
		Short: "Generate a dependency graph from a template",
		Long: `Graph renders the references between resources, parameters, and
outputs as a DOT or Mermaid diagram.

GetAtt edges are drawn in blue, DependsOn edges dashed.

Examples:
    stackcheck graph template.yaml
    stackcheck graph template.yaml --format mermaid
    stackcheck graph template.yaml -p -c -o deps.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(args[0], outputFormat, outputPath, includeParameters, clusterByService)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().BoolVarP(&includeParameters, "include-parameters", "p", false, "Include parameter nodes")
	cmd.Flags().BoolVarP(&clusterByService, "cluster", "c", false, "Group resources into per-service clusters")

	return cmd
}

func runGraph(path, format, outputPath string, includeParameters, clusterByService bool) error {
	tmpl, err := template.Load(path)
	if err != nil {
		return err
	}

	gen := graph.Generator{
		IncludeParameters: includeParameters,
		ClusterByService:  clusterByService,
	}
	switch format {
	case "dot":
		gen.Format = graph.FormatDOT
	case "mermaid":
		gen.Format = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	out, err := gen.GenerateString(tmpl)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
		fmt.Printf("Graph written to %s\n", outputPath)
		return nil
	}

	fmt.Print(out)
	return nil
}
