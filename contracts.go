// Package stackcheck provides the template model and output contracts for
// the stackcheck CLI.
//
// A template is a declarative infrastructure document with three top-level
// sections, each a mapping from logical name to a spec object:
//
//	{
//	    "Parameters": {"LambdaFunctionArn": {"Type": "String"}},
//	    "Resources":  {"InvokeRole": {"Type": "AWS::IAM::Role", "Properties": {...}}},
//	    "Outputs":    {"RoleArn": {"Value": {"GetAtt": "InvokeRole.Arn"}}}
//	}
//
// Property and output values may be literals, parameter references
// ({"Ref": "<name>"}) or resource attribute references
// ({"GetAtt": "<resource>.<attribute>"}). The stackcheck CLI loads,
// validates, renders, diffs, and graphs these documents.
package stackcheck

import (
	"encoding/json"
	"fmt"
)

// Template is a parsed infrastructure template. It is immutable once
// loaded: validation and rendering never modify it.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion,omitempty" yaml:"AWSTemplateFormatVersion,omitempty"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters" yaml:"Parameters"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs" yaml:"Outputs"`
}

// Parameter is a template parameter declaration.
type Parameter struct {
	Type          string `json:"Type" yaml:"Type"`
	Description   string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default       any    `json:"Default,omitempty" yaml:"Default,omitempty"`
	AllowedValues []any  `json:"AllowedValues,omitempty" yaml:"AllowedValues,omitempty"`
}

// ResourceDef is a single resource declaration in the template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Output is a template output declaration.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
}

// ReferenceKind distinguishes the two reference expression forms.
type ReferenceKind string

const (
	// KindRef is a {"Ref": "<name>"} expression. It resolves against
	// declared parameters first, then resources.
	KindRef ReferenceKind = "Ref"
	// KindGetAtt is a {"GetAtt": "<resource>.<attribute>"} expression.
	KindGetAtt ReferenceKind = "GetAtt"
)

// Reference is a reference expression found inside a resource property or
// output value. Literal values are never materialized as References.
type Reference struct {
	// Kind is Ref or GetAtt.
	Kind ReferenceKind
	// Name is the referenced parameter or resource logical name.
	Name string
	// Attribute is the attribute name for GetAtt references.
	Attribute string
	// Path is the document path where the reference appears,
	// e.g. "Resources/InvokeRole/Properties/Policies/0".
	Path string
}

// MarshalJSON serializes the reference in its canonical wire form.
func (r Reference) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindGetAtt:
		return json.Marshal(map[string]string{
			"GetAtt": r.Name + "." + r.Attribute,
		})
	default:
		return json.Marshal(map[string]string{"Ref": r.Name})
	}
}

// String returns the reference in a human-readable form.
func (r Reference) String() string {
	if r.Kind == KindGetAtt {
		return fmt.Sprintf("GetAtt %s.%s", r.Name, r.Attribute)
	}
	return fmt.Sprintf("Ref %s", r.Name)
}

// ValidateResult is the JSON output from `stackcheck validate`.
type ValidateResult struct {
	Success    bool     `json:"success"`
	Resources  int      `json:"resources"`
	Parameters int      `json:"parameters"`
	Outputs    int      `json:"outputs"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// LintResult is the JSON output from `stackcheck lint`.
type LintResult struct {
	Success bool        `json:"success"`
	Issues  []LintIssue `json:"issues,omitempty"`
}

// LintIssue is a single linting issue.
type LintIssue struct {
	Rule    string `json:"rule"`
	Level   string `json:"level"` // "Error", "Warning", "Informational"
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	File    string `json:"file,omitempty"`
}

// ListResult is the JSON output from `stackcheck list`.
type ListResult struct {
	Resources []ListResource `json:"resources"`
}

// ListResource is a single resource in the list output.
type ListResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TemplateDiff describes the differences between two templates.
type TemplateDiff struct {
	Added    []DiffEntry `json:"added,omitempty"`
	Removed  []DiffEntry `json:"removed,omitempty"`
	Modified []DiffEntry `json:"modified,omitempty"`
}

// DiffEntry is a single added, removed, or modified template entry.
type DiffEntry struct {
	// Section is "Resources", "Parameters", or "Outputs".
	Section string `json:"section"`
	// Name is the entry's logical name.
	Name string `json:"name"`
	// Type is the resource or parameter type, where applicable.
	Type string `json:"type,omitempty"`
	// Changes lists the modified paths for modified entries.
	Changes []string `json:"changes,omitempty"`
}

// DiffSummary counts the differences between two templates.
type DiffSummary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Total    int `json:"total"`
}

// DiffResult is the JSON output from `stackcheck diff`.
type DiffResult struct {
	Diff    TemplateDiff `json:"diff"`
	Summary DiffSummary  `json:"summary"`
}
