package render

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stackcheck "github.com/lex00/stackcheck-go"
	"github.com/lex00/stackcheck-go/internal/template"
)

func loadFixture(t *testing.T) *stackcheck.Template {
	t.Helper()
	tmpl, err := template.Load(filepath.Join("..", "template", "testdata", "lambda-invoke-role.json"))
	require.NoError(t, err)
	return tmpl
}

func TestRender_SubstitutesParameterAndAttribute(t *testing.T) {
	tmpl := loadFixture(t)

	arn := "arn:aws:lambda:us-east-1:123456789012:function:report"
	roleArn := "arn:aws:iam::123456789012:role/lambda-invoke-role"

	rendered, err := Render(tmpl, Values{
		Parameters: map[string]any{"LambdaFunctionArn": arn},
		Attributes: map[string]string{"LambdaInvokeRole.Arn": roleArn},
	})
	require.NoError(t, err)

	props := rendered.Resources["LambdaInvokeRole"].Properties
	policies := props["Policies"].([]any)
	doc := policies[0].(map[string]any)["PolicyDocument"].(map[string]any)
	statement := doc["Statement"].([]any)[0].(map[string]any)
	assert.Equal(t, arn, statement["Resource"])

	assert.Equal(t, roleArn, rendered.Outputs["RoleArn"].Value)
}

func TestRender_DoesNotMutateSource(t *testing.T) {
	tmpl := loadFixture(t)

	_, err := Render(tmpl, Values{
		Parameters: map[string]any{"LambdaFunctionArn": "arn:aws:lambda:::fn"},
		Attributes: map[string]string{"LambdaInvokeRole.Arn": "arn:aws:iam:::role/r"},
	})
	require.NoError(t, err)

	// The source template still holds the unrendered reference expressions.
	assert.Equal(t,
		map[string]any{"GetAtt": "LambdaInvokeRole.Arn"},
		tmpl.Outputs["RoleArn"].Value)

	refs, err := template.References(tmpl)
	require.NoError(t, err)
	assert.Len(t, refs, 2)
}

func TestRender_MissingParameterValue(t *testing.T) {
	tmpl := loadFixture(t)

	_, err := Render(tmpl, Values{
		Attributes: map[string]string{"LambdaInvokeRole.Arn": "arn:aws:iam:::role/r"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"LambdaFunctionArn"`)
	assert.Contains(t, err.Error(), "Resources/LambdaInvokeRole/Properties/Policies")
}

func TestRender_MissingAttributeValue(t *testing.T) {
	tmpl := loadFixture(t)

	_, err := Render(tmpl, Values{
		Parameters: map[string]any{"LambdaFunctionArn": "arn:aws:lambda:::fn"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"LambdaInvokeRole.Arn"`)
	assert.Contains(t, err.Error(), "Outputs/RoleArn/Value")
}

func TestRender_ParameterDefaultApplies(t *testing.T) {
	tmpl := &stackcheck.Template{
		Parameters: map[string]stackcheck.Parameter{
			"Stage": {Type: "String", Default: "dev"},
		},
		Resources: map[string]stackcheck.ResourceDef{
			"Bucket": {
				Type:       "AWS::S3::Bucket",
				Properties: map[string]any{"BucketName": map[string]any{"Ref": "Stage"}},
			},
		},
		Outputs: map[string]stackcheck.Output{},
	}

	rendered, err := Render(tmpl, Values{})
	require.NoError(t, err)
	assert.Equal(t, "dev", rendered.Resources["Bucket"].Properties["BucketName"])
}

func TestRender_SuppliedValueBeatsDefault(t *testing.T) {
	tmpl := &stackcheck.Template{
		Parameters: map[string]stackcheck.Parameter{
			"Stage": {Type: "String", Default: "dev"},
		},
		Outputs: map[string]stackcheck.Output{
			"Stage": {Value: map[string]any{"Ref": "Stage"}},
		},
	}

	rendered, err := Render(tmpl, Values{
		Parameters: map[string]any{"Stage": "prod"},
	})
	require.NoError(t, err)
	assert.Equal(t, "prod", rendered.Outputs["Stage"].Value)
}

func TestRender_ResourcePhysicalID(t *testing.T) {
	tmpl := &stackcheck.Template{
		Resources: map[string]stackcheck.ResourceDef{
			"Bucket": {Type: "AWS::S3::Bucket"},
		},
		Outputs: map[string]stackcheck.Output{
			"BucketName": {Value: map[string]any{"Ref": "Bucket"}},
		},
	}

	rendered, err := Render(tmpl, Values{
		Resources: map[string]string{"Bucket": "reports-bucket-1a2b3c"},
	})
	require.NoError(t, err)
	assert.Equal(t, "reports-bucket-1a2b3c", rendered.Outputs["BucketName"].Value)

	_, err = Render(tmpl, Values{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Bucket"`)
}
