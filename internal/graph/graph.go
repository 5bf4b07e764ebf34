// Package graph generates DOT and Mermaid format reference graphs from
// validated templates.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	stackcheck "github.com/lex00/stackcheck-go"
	"github.com/lex00/stackcheck-go/internal/template"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates reference graphs from templates.
type Generator struct {
	// IncludeParameters includes parameter nodes in the graph.
	IncludeParameters bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by provider service, derived from
	// the resource type (e.g. "AWS::IAM::Role" clusters under IAM).
	ClusterByService bool
}

// Generate creates the reference graph for t and writes it to w.
func (g *Generator) Generate(t *stackcheck.Template, w io.Writer) error {
	graph, err := g.buildGraph(t)
	if err != nil {
		return err
	}

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err = w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(t *stackcheck.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(t, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildGraph creates the dot.Graph structure from the template.
func (g *Generator) buildGraph(t *stackcheck.Template) (*dot.Graph, error) {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})

	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if g.ClusterByService {
		g.addClusteredNodes(graph, t)
	} else {
		g.addNodes(graph, t)
	}

	if g.IncludeParameters {
		for name := range t.Parameters {
			n := graph.Node(name)
			n.Attr("shape", "ellipse")
			n.Attr("style", "dashed")
			n.Label(name)
		}
	}

	refs, err := template.ResourceReferences(t)
	if err != nil {
		return nil, err
	}

	// Edges from reference expressions inside properties.
	for name, resourceRefs := range refs {
		for _, ref := range resourceRefs {
			if _, isParam := t.Parameters[ref.Name]; isParam && !g.IncludeParameters {
				continue
			}
			_, isResource := t.Resources[ref.Name]
			_, isParam := t.Parameters[ref.Name]
			if !isResource && !isParam {
				continue
			}

			e := graph.Edge(graph.Node(name), graph.Node(ref.Name))
			if ref.Kind == stackcheck.KindGetAtt {
				e.Attr("color", "blue")
			}
		}
	}

	// Edges from explicit DependsOn declarations.
	for name, res := range t.Resources {
		for _, dep := range res.DependsOn {
			if _, ok := t.Resources[dep]; !ok {
				continue
			}
			e := graph.Edge(graph.Node(name), graph.Node(dep))
			e.Attr("style", "dashed")
		}
	}

	return graph, nil
}

// addNodes adds resource nodes without clustering.
func (g *Generator) addNodes(graph *dot.Graph, t *stackcheck.Template) {
	for name, res := range t.Resources {
		n := graph.Node(name)
		n.Label(name + "\\n[" + res.Type + "]")
	}
}

// addClusteredNodes adds resource nodes grouped by provider service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, t *stackcheck.Template) {
	serviceResources := make(map[string][]string)
	for name, res := range t.Resources {
		service := extractService(res.Type)
		serviceResources[service] = append(serviceResources[service], name)
	}

	for service, names := range serviceResources {
		if len(names) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, name := range names {
				n := cluster.Node(name)
				n.Label(name + "\\n[" + t.Resources[name].Type + "]")
			}
		} else {
			for _, name := range names {
				n := graph.Node(name)
				n.Label(name + "\\n[" + t.Resources[name].Type + "]")
			}
		}
	}
}

// extractService extracts the service segment from a provider resource
// type, e.g. "AWS::IAM::Role" -> "IAM".
func extractService(resourceType string) string {
	parts := strings.Split(resourceType, "::")
	if len(parts) >= 2 {
		return parts[1]
	}
	return "Other"
}
