package template

import "fmt"

// ParseError reports input that could not be decoded as JSON or YAML.
type ParseError struct {
	// Source is the file path or source name of the input.
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a structurally invalid template: a missing required
// section, a section or spec field of the wrong type, or a malformed
// reference expression.
type SchemaError struct {
	// Path is the document path of the offending node,
	// e.g. "Resources/InvokeRole/Type".
	Path string
	Msg  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// UnresolvedReferenceError reports a reference to a logical name that is
// not declared in the template.
type UnresolvedReferenceError struct {
	// Path is the document path where the dangling reference appears.
	Path string
	// Name is the undeclared logical name the reference points at.
	Name string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: unresolved reference %q", e.Path, e.Name)
}
