// Package template loads and validates infrastructure templates.
//
// A template is parsed from JSON or YAML, checked for structural validity,
// and checked for dangling references. The three failure modes map to the
// three error types: ParseError (undecodable input), SchemaError (invalid
// structure), and UnresolvedReferenceError (a reference naming an
// undeclared parameter or resource). Loading is pure and single-pass; the
// returned Template is never modified afterwards.
package template

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	stackcheck "github.com/lex00/stackcheck-go"
)

// requiredSections are the top-level mappings every template must declare.
// They may be empty, but they must be present.
var requiredSections = []string{"Parameters", "Resources", "Outputs"}

// Load reads, parses, and validates the template file at path.
func Load(path string) (*stackcheck.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse parses and validates raw template text. source names the input in
// error messages, typically a file path.
func Parse(data []byte, source string) (*stackcheck.Template, error) {
	raw, err := decode(data)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	t, err := build(raw)
	if err != nil {
		return nil, err
	}

	if err := Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// decode unmarshals raw text into a generic mapping, trying JSON first and
// falling back to YAML.
func decode(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("not valid JSON or YAML: %w", err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("empty document")
	}
	return raw, nil
}

// build converts the decoded mapping into a typed Template, checking the
// structure of every section as it goes.
func build(raw map[string]any) (*stackcheck.Template, error) {
	for _, section := range requiredSections {
		if _, ok := raw[section]; !ok {
			return nil, &SchemaError{Path: section, Msg: "missing required section"}
		}
	}

	t := &stackcheck.Template{
		Parameters: make(map[string]stackcheck.Parameter),
		Resources:  make(map[string]stackcheck.ResourceDef),
		Outputs:    make(map[string]stackcheck.Output),
	}

	if v, ok := raw["AWSTemplateFormatVersion"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, &SchemaError{Path: "AWSTemplateFormatVersion", Msg: "expected a string"}
		}
		t.AWSTemplateFormatVersion = s
	}
	if v, ok := raw["Description"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, &SchemaError{Path: "Description", Msg: "expected a string"}
		}
		t.Description = s
	}

	params, err := sectionMap(raw, "Parameters")
	if err != nil {
		return nil, err
	}
	for name, spec := range params {
		p, err := buildParameter(name, spec)
		if err != nil {
			return nil, err
		}
		t.Parameters[name] = p
	}

	resources, err := sectionMap(raw, "Resources")
	if err != nil {
		return nil, err
	}
	for name, spec := range resources {
		r, err := buildResource(name, spec)
		if err != nil {
			return nil, err
		}
		t.Resources[name] = r
	}

	outputs, err := sectionMap(raw, "Outputs")
	if err != nil {
		return nil, err
	}
	for name, spec := range outputs {
		o, err := buildOutput(name, spec)
		if err != nil {
			return nil, err
		}
		t.Outputs[name] = o
	}

	return t, nil
}

// sectionMap extracts a top-level section as a mapping. A nil section
// (e.g. an empty YAML key) counts as an empty mapping.
func sectionMap(raw map[string]any, section string) (map[string]any, error) {
	v := raw[section]
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &SchemaError{Path: section, Msg: "expected a mapping of logical names"}
	}
	return m, nil
}

func buildParameter(name string, spec any) (stackcheck.Parameter, error) {
	path := "Parameters/" + name
	m, ok := spec.(map[string]any)
	if !ok {
		return stackcheck.Parameter{}, &SchemaError{Path: path, Msg: "expected a parameter spec mapping"}
	}

	var p stackcheck.Parameter
	typ, ok := m["Type"]
	if !ok {
		return stackcheck.Parameter{}, &SchemaError{Path: path + "/Type", Msg: "missing parameter type"}
	}
	if p.Type, ok = typ.(string); !ok {
		return stackcheck.Parameter{}, &SchemaError{Path: path + "/Type", Msg: "expected a string"}
	}

	if desc, ok := m["Description"]; ok {
		if p.Description, ok = desc.(string); !ok {
			return stackcheck.Parameter{}, &SchemaError{Path: path + "/Description", Msg: "expected a string"}
		}
	}
	if def, ok := m["Default"]; ok {
		p.Default = def
	}
	if vals, ok := m["AllowedValues"]; ok {
		list, ok := vals.([]any)
		if !ok {
			return stackcheck.Parameter{}, &SchemaError{Path: path + "/AllowedValues", Msg: "expected a sequence"}
		}
		p.AllowedValues = list
	}

	return p, nil
}

func buildResource(name string, spec any) (stackcheck.ResourceDef, error) {
	path := "Resources/" + name
	m, ok := spec.(map[string]any)
	if !ok {
		return stackcheck.ResourceDef{}, &SchemaError{Path: path, Msg: "expected a resource spec mapping"}
	}

	var r stackcheck.ResourceDef
	typ, ok := m["Type"]
	if !ok {
		return stackcheck.ResourceDef{}, &SchemaError{Path: path + "/Type", Msg: "missing resource type"}
	}
	if r.Type, ok = typ.(string); !ok || r.Type == "" {
		return stackcheck.ResourceDef{}, &SchemaError{Path: path + "/Type", Msg: "expected a non-empty string"}
	}

	if props, ok := m["Properties"]; ok && props != nil {
		pm, ok := props.(map[string]any)
		if !ok {
			return stackcheck.ResourceDef{}, &SchemaError{Path: path + "/Properties", Msg: "expected a mapping"}
		}
		r.Properties = pm
	}

	if dep, ok := m["DependsOn"]; ok {
		names, err := dependsOnNames(dep, path+"/DependsOn")
		if err != nil {
			return stackcheck.ResourceDef{}, err
		}
		r.DependsOn = names
	}

	return r, nil
}

// dependsOnNames normalizes DependsOn, which may be a single logical name
// or a sequence of them.
func dependsOnNames(v any, path string) ([]string, error) {
	switch dep := v.(type) {
	case string:
		return []string{dep}, nil
	case []any:
		names := make([]string, 0, len(dep))
		for i, elem := range dep {
			s, ok := elem.(string)
			if !ok {
				return nil, &SchemaError{
					Path: fmt.Sprintf("%s/%d", path, i),
					Msg:  "expected a logical name string",
				}
			}
			names = append(names, s)
		}
		return names, nil
	default:
		return nil, &SchemaError{Path: path, Msg: "expected a logical name or sequence of logical names"}
	}
}

func buildOutput(name string, spec any) (stackcheck.Output, error) {
	path := "Outputs/" + name
	m, ok := spec.(map[string]any)
	if !ok {
		return stackcheck.Output{}, &SchemaError{Path: path, Msg: "expected an output spec mapping"}
	}

	var o stackcheck.Output
	if desc, ok := m["Description"]; ok {
		if o.Description, ok = desc.(string); !ok {
			return stackcheck.Output{}, &SchemaError{Path: path + "/Description", Msg: "expected a string"}
		}
	}

	val, ok := m["Value"]
	if !ok || val == nil {
		return stackcheck.Output{}, &SchemaError{Path: path + "/Value", Msg: "missing output value"}
	}
	o.Value = val

	return o, nil
}

// ToJSON serializes the template to indented JSON.
func ToJSON(t *stackcheck.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *stackcheck.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
