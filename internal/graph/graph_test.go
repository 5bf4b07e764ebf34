package graph

import (
	"strings"
	"testing"

	stackcheck "github.com/lex00/stackcheck-go"
)

func simpleTemplate() *stackcheck.Template {
	return &stackcheck.Template{
		Parameters: map[string]stackcheck.Parameter{
			"LambdaFunctionArn": {Type: "String"},
		},
		Resources: map[string]stackcheck.ResourceDef{
			"InvokeRole": {
				Type: "AWS::IAM::Role",
				Properties: map[string]any{
					"Policies": []any{
						map[string]any{
							"PolicyDocument": map[string]any{
								"Resource": map[string]any{"Ref": "LambdaFunctionArn"},
							},
						},
					},
				},
			},
			"Function": {
				Type: "AWS::Lambda::Function",
				Properties: map[string]any{
					"Role": map[string]any{"GetAtt": "InvokeRole.Arn"},
				},
			},
		},
		Outputs: map[string]stackcheck.Output{},
	}
}

func TestGenerator_Generate_SimpleGraph(t *testing.T) {
	gen := &Generator{}
	var sb strings.Builder
	if err := gen.Generate(simpleTemplate(), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	if !strings.Contains(output, "digraph") {
		t.Error("expected digraph declaration")
	}
	if !strings.Contains(output, "InvokeRole") {
		t.Error("expected InvokeRole node")
	}
	if !strings.Contains(output, "Function") {
		t.Error("expected Function node")
	}
	if !strings.Contains(output, "AWS::IAM::Role") {
		t.Error("expected resource type in node label")
	}
}

func TestGenerator_Generate_GetAttEdgeIsBlue(t *testing.T) {
	gen := &Generator{}
	var sb strings.Builder
	if err := gen.Generate(simpleTemplate(), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(sb.String(), "blue") {
		t.Error("expected blue color for GetAtt edge")
	}
}

func TestGenerator_Generate_ParameterNodes(t *testing.T) {
	tmpl := simpleTemplate()

	// Without IncludeParameters, the parameter stays out of the graph.
	gen := &Generator{}
	output, err := gen.GenerateString(tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(output, "ellipse") {
		t.Error("did not expect parameter node without IncludeParameters")
	}

	gen = &Generator{IncludeParameters: true}
	output, err = gen.GenerateString(tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "LambdaFunctionArn") {
		t.Error("expected LambdaFunctionArn parameter node")
	}
	if !strings.Contains(output, "ellipse") {
		t.Error("expected ellipse shape for parameter node")
	}
}

func TestGenerator_Generate_Mermaid(t *testing.T) {
	gen := &Generator{Format: FormatMermaid}
	output, err := gen.GenerateString(simpleTemplate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should be mermaid format (flowchart or graph)
	if !strings.Contains(output, "graph") && !strings.Contains(output, "flowchart") {
		t.Errorf("expected mermaid graph/flowchart, got:\n%s", output)
	}

	if strings.Contains(output, "digraph") {
		t.Error("expected mermaid format, not DOT")
	}
}

func TestGenerator_Generate_ClusterByService(t *testing.T) {
	tmpl := simpleTemplate()
	tmpl.Resources["AuditRole"] = stackcheck.ResourceDef{Type: "AWS::IAM::Role"}

	gen := &Generator{ClusterByService: true}
	output, err := gen.GenerateString(tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(output, "cluster_IAM") {
		t.Errorf("expected IAM cluster, got:\n%s", output)
	}
}

func TestGenerator_Generate_DependsOnEdge(t *testing.T) {
	tmpl := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"A": {Type: "AWS::S3::Bucket"},
			"B": {Type: "AWS::S3::Bucket", DependsOn: []string{"A"}},
		},
	}

	gen := &Generator{}
	output, err := gen.GenerateString(tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(output, "dashed") {
		t.Error("expected dashed style for DependsOn edge")
	}
}

func TestExtractService(t *testing.T) {
	tests := []struct {
		resourceType string
		want         string
	}{
		{"AWS::IAM::Role", "IAM"},
		{"AWS::Lambda::Function", "Lambda"},
		{"Custom::Thing", "Thing"},
		{"Malformed", "Other"},
	}

	for _, tt := range tests {
		if got := extractService(tt.resourceType); got != tt.want {
			t.Errorf("extractService(%q) = %q, want %q", tt.resourceType, got, tt.want)
		}
	}
}
