// Package render substitutes reference expressions with concrete values
// supplied externally.
//
// Rendering happens after validation, so every reference is known to point
// at a declared parameter or resource; the only failure mode is a
// reference with no value available.
package render

import (
	"fmt"

	stackcheck "github.com/lex00/stackcheck-go"
	"github.com/lex00/stackcheck-go/internal/template"
)

// Values supplies the concrete data substituted for references.
type Values struct {
	// Parameters maps parameter logical names to values. A parameter with
	// no entry falls back to its declared Default.
	Parameters map[string]any
	// Resources maps resource logical names to physical identifiers,
	// substituted for Ref expressions targeting resources.
	Resources map[string]string
	// Attributes maps "<resource>.<attribute>" keys to attribute values,
	// substituted for GetAtt expressions.
	Attributes map[string]string
}

// Render returns a copy of the template with every reference expression in
// resource properties and output values replaced by its concrete value.
// The input template is not modified.
func Render(t *stackcheck.Template, vals Values) (*stackcheck.Template, error) {
	out := &stackcheck.Template{
		AWSTemplateFormatVersion: t.AWSTemplateFormatVersion,
		Description:              t.Description,
		Parameters:               make(map[string]stackcheck.Parameter, len(t.Parameters)),
		Resources:                make(map[string]stackcheck.ResourceDef, len(t.Resources)),
		Outputs:                  make(map[string]stackcheck.Output, len(t.Outputs)),
	}

	for name, p := range t.Parameters {
		out.Parameters[name] = p
	}

	r := &resolver{template: t, values: vals}

	for name, res := range t.Resources {
		rendered := stackcheck.ResourceDef{
			Type:      res.Type,
			DependsOn: append([]string(nil), res.DependsOn...),
		}
		if res.Properties != nil {
			props := make(map[string]any, len(res.Properties))
			for prop, v := range res.Properties {
				path := "Resources/" + name + "/Properties/" + prop
				resolved, err := r.resolveValue(v, path)
				if err != nil {
					return nil, err
				}
				props[prop] = resolved
			}
			rendered.Properties = props
		}
		out.Resources[name] = rendered
	}

	for name, o := range t.Outputs {
		resolved, err := r.resolveValue(o.Value, "Outputs/"+name+"/Value")
		if err != nil {
			return nil, err
		}
		out.Outputs[name] = stackcheck.Output{
			Description: o.Description,
			Value:       resolved,
		}
	}

	return out, nil
}

type resolver struct {
	template *stackcheck.Template
	values   Values
}

// resolveValue walks a decoded value, replacing reference expressions and
// deep-copying collections so the source template stays untouched.
func (r *resolver) resolveValue(v any, path string) (any, error) {
	ref, isRef, err := template.ParseReference(v, path)
	if err != nil {
		return nil, err
	}
	if isRef {
		return r.resolveRef(ref)
	}

	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			resolved, err := r.resolveValue(child, path+"/"+k)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			resolved, err := r.resolveValue(child, fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return val, nil
	}
}

func (r *resolver) resolveRef(ref stackcheck.Reference) (any, error) {
	switch ref.Kind {
	case stackcheck.KindGetAtt:
		key := ref.Name + "." + ref.Attribute
		if v, ok := r.values.Attributes[key]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("no value for attribute %q (at %s)", key, ref.Path)

	default:
		if p, ok := r.template.Parameters[ref.Name]; ok {
			if v, ok := r.values.Parameters[ref.Name]; ok {
				return v, nil
			}
			if p.Default != nil {
				return p.Default, nil
			}
			return nil, fmt.Errorf("no value for parameter %q (at %s)", ref.Name, ref.Path)
		}
		if v, ok := r.values.Resources[ref.Name]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("no physical id for resource %q (at %s)", ref.Name, ref.Path)
	}
}
