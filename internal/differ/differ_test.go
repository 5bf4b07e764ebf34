package differ

import (
	"testing"

	stackcheck "github.com/lex00/stackcheck-go"
)

func TestCompare(t *testing.T) {
	t1 := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Bucket1": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "bucket1"}},
			"Bucket2": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "bucket2"}},
		},
	}

	t2 := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Bucket1": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "bucket1-modified"}},
			"Bucket3": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "bucket3"}},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	// Bucket2 was removed
	if len(result.Diff.Removed) != 1 {
		t.Errorf("Removed = %d, want 1", len(result.Diff.Removed))
	} else if result.Diff.Removed[0].Name != "Bucket2" {
		t.Errorf("Removed[0].Name = %s, want Bucket2", result.Diff.Removed[0].Name)
	}

	// Bucket3 was added
	if len(result.Diff.Added) != 1 {
		t.Errorf("Added = %d, want 1", len(result.Diff.Added))
	} else if result.Diff.Added[0].Name != "Bucket3" {
		t.Errorf("Added[0].Name = %s, want Bucket3", result.Diff.Added[0].Name)
	}

	// Bucket1 was modified
	if len(result.Diff.Modified) != 1 {
		t.Errorf("Modified = %d, want 1", len(result.Diff.Modified))
	} else if result.Diff.Modified[0].Name != "Bucket1" {
		t.Errorf("Modified[0].Name = %s, want Bucket1", result.Diff.Modified[0].Name)
	}

	if result.Summary.Total != 3 {
		t.Errorf("Summary.Total = %d, want 3", result.Summary.Total)
	}
}

func TestCompareIdentical(t *testing.T) {
	template := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Bucket": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "test"}},
		},
	}

	result, err := Compare(template, template, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if result.Summary.Total != 0 {
		t.Errorf("Summary.Total = %d, want 0 for identical templates", result.Summary.Total)
	}
}

func TestCompareTypeChange(t *testing.T) {
	t1 := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Resource1": {Type: "AWS::S3::Bucket"},
		},
	}

	t2 := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Resource1": {Type: "AWS::S3::AccessPoint"},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Modified) != 1 {
		t.Fatalf("Modified = %d, want 1", len(result.Diff.Modified))
	}

	found := false
	for _, change := range result.Diff.Modified[0].Changes {
		if change == "Type changed: AWS::S3::Bucket → AWS::S3::AccessPoint" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected type change to be detected")
	}
}

func TestCompareParameters(t *testing.T) {
	t1 := &stackcheck.Template{
		Parameters: map[string]stackcheck.Parameter{
			"LambdaFunctionArn": {Type: "String"},
			"Stage":             {Type: "String", Default: "dev"},
		},
	}

	t2 := &stackcheck.Template{
		Parameters: map[string]stackcheck.Parameter{
			"Stage":  {Type: "String", Default: "prod"},
			"Region": {Type: "String"},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Removed) != 1 || result.Diff.Removed[0].Name != "LambdaFunctionArn" {
		t.Errorf("Removed = %+v, want LambdaFunctionArn", result.Diff.Removed)
	}
	if len(result.Diff.Added) != 1 || result.Diff.Added[0].Name != "Region" {
		t.Errorf("Added = %+v, want Region", result.Diff.Added)
	}
	if len(result.Diff.Modified) != 1 || result.Diff.Modified[0].Name != "Stage" {
		t.Fatalf("Modified = %+v, want Stage", result.Diff.Modified)
	}
	if result.Diff.Modified[0].Section != "Parameters" {
		t.Errorf("Section = %s, want Parameters", result.Diff.Modified[0].Section)
	}
	if result.Diff.Modified[0].Changes[0] != "Default changed" {
		t.Errorf("Changes = %v, want Default changed", result.Diff.Modified[0].Changes)
	}
}

func TestCompareOutputs(t *testing.T) {
	t1 := &stackcheck.Template{
		Outputs: map[string]stackcheck.Output{
			"RoleArn": {Value: map[string]any{"GetAtt": "InvokeRole.Arn"}},
		},
	}

	t2 := &stackcheck.Template{
		Outputs: map[string]stackcheck.Output{
			"RoleArn": {Value: map[string]any{"GetAtt": "OtherRole.Arn"}},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Modified) != 1 {
		t.Fatalf("Modified = %d, want 1", len(result.Diff.Modified))
	}
	if result.Diff.Modified[0].Section != "Outputs" {
		t.Errorf("Section = %s, want Outputs", result.Diff.Modified[0].Section)
	}
	if result.Diff.Modified[0].Changes[0] != "Value changed" {
		t.Errorf("Changes = %v, want Value changed", result.Diff.Modified[0].Changes)
	}
}

func TestCompareNestedPropertyPath(t *testing.T) {
	t1 := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Role": {Type: "AWS::IAM::Role", Properties: map[string]any{
				"AssumeRolePolicyDocument": map[string]any{"Version": "2012-10-17"},
			}},
		},
	}

	t2 := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Role": {Type: "AWS::IAM::Role", Properties: map[string]any{
				"AssumeRolePolicyDocument": map[string]any{"Version": "2008-10-17"},
			}},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Modified) != 1 {
		t.Fatalf("Modified = %d, want 1", len(result.Diff.Modified))
	}
	want := "AssumeRolePolicyDocument.Version modified"
	if result.Diff.Modified[0].Changes[0] != want {
		t.Errorf("Changes[0] = %q, want %q", result.Diff.Modified[0].Changes[0], want)
	}
}

func TestCompareIgnoreOrder(t *testing.T) {
	t1 := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Role": {Type: "AWS::IAM::Role", Properties: map[string]any{
				"ManagedPolicyArns": []any{"arn:a", "arn:b"},
			}},
		},
	}

	t2 := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Role": {Type: "AWS::IAM::Role", Properties: map[string]any{
				"ManagedPolicyArns": []any{"arn:b", "arn:a"},
			}},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if result.Summary.Total != 1 {
		t.Errorf("ordered compare Total = %d, want 1", result.Summary.Total)
	}

	result, err = Compare(t1, t2, Options{IgnoreOrder: true})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if result.Summary.Total != 0 {
		t.Errorf("unordered compare Total = %d, want 0", result.Summary.Total)
	}
}
