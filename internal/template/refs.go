package template

import (
	"sort"
	"strconv"
	"strings"

	stackcheck "github.com/lex00/stackcheck-go"
)

// ParseReference inspects a decoded value and reports whether it is a
// reference expression.
//
// The canonical forms are single-key mappings:
//
//	{"Ref": "<name>"}
//	{"GetAtt": "<resource>.<attribute>"}
//
// The long-form {"Fn::GetAtt": ["<resource>", "<attribute>"]} and the
// dotted-string {"Fn::GetAtt": "<resource>.<attribute>"} are accepted for
// compatibility. A mapping with additional keys is a literal, not a
// reference. A reference key with a payload of the wrong shape is a
// SchemaError at the given path.
func ParseReference(v any, path string) (stackcheck.Reference, bool, error) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return stackcheck.Reference{}, false, nil
	}

	if raw, ok := m["Ref"]; ok {
		name, ok := raw.(string)
		if !ok || name == "" {
			return stackcheck.Reference{}, false, &SchemaError{
				Path: path,
				Msg:  "Ref expects a non-empty logical name string",
			}
		}
		return stackcheck.Reference{
			Kind: stackcheck.KindRef,
			Name: name,
			Path: path,
		}, true, nil
	}

	raw, isGetAtt := m["GetAtt"]
	if !isGetAtt {
		raw, isGetAtt = m["Fn::GetAtt"]
	}
	if !isGetAtt {
		return stackcheck.Reference{}, false, nil
	}

	switch payload := raw.(type) {
	case string:
		name, attr, found := strings.Cut(payload, ".")
		if !found || name == "" || attr == "" {
			return stackcheck.Reference{}, false, &SchemaError{
				Path: path,
				Msg:  `GetAtt expects "<resource>.<attribute>"`,
			}
		}
		return stackcheck.Reference{
			Kind:      stackcheck.KindGetAtt,
			Name:      name,
			Attribute: attr,
			Path:      path,
		}, true, nil

	case []any:
		if len(payload) != 2 {
			return stackcheck.Reference{}, false, &SchemaError{
				Path: path,
				Msg:  "Fn::GetAtt expects [resource, attribute]",
			}
		}
		name, nameOK := payload[0].(string)
		attr, attrOK := payload[1].(string)
		if !nameOK || !attrOK || name == "" || attr == "" {
			return stackcheck.Reference{}, false, &SchemaError{
				Path: path,
				Msg:  "Fn::GetAtt expects [resource, attribute]",
			}
		}
		return stackcheck.Reference{
			Kind:      stackcheck.KindGetAtt,
			Name:      name,
			Attribute: attr,
			Path:      path,
		}, true, nil

	default:
		return stackcheck.Reference{}, false, &SchemaError{
			Path: path,
			Msg:  `GetAtt expects "<resource>.<attribute>"`,
		}
	}
}

// walkValue calls fn for every reference expression found in v, descending
// into mappings and sequences. Mapping keys are visited in sorted order so
// the first error reported is deterministic.
func walkValue(v any, path string, fn func(stackcheck.Reference) error) error {
	ref, isRef, err := ParseReference(v, path)
	if err != nil {
		return err
	}
	if isRef {
		return fn(ref)
	}

	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := walkValue(val[k], path+"/"+k, fn); err != nil {
				return err
			}
		}
	case []any:
		for i, elem := range val {
			if err := walkValue(elem, path+"/"+strconv.Itoa(i), fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// References collects every reference expression in the template's resource
// properties and output values.
func References(t *stackcheck.Template) ([]stackcheck.Reference, error) {
	var refs []stackcheck.Reference
	collect := func(r stackcheck.Reference) error {
		refs = append(refs, r)
		return nil
	}

	for _, name := range sortedKeys(t.Resources) {
		res := t.Resources[name]
		for _, prop := range sortedKeys(res.Properties) {
			path := "Resources/" + name + "/Properties/" + prop
			if err := walkValue(res.Properties[prop], path, collect); err != nil {
				return nil, err
			}
		}
	}

	for _, name := range sortedKeys(t.Outputs) {
		out := t.Outputs[name]
		if err := walkValue(out.Value, "Outputs/"+name+"/Value", collect); err != nil {
			return nil, err
		}
	}

	return refs, nil
}

// ResourceReferences returns the logical names each resource refers to,
// through reference expressions in its properties and through DependsOn.
// The result drives the dependency graph.
func ResourceReferences(t *stackcheck.Template) (map[string][]stackcheck.Reference, error) {
	deps := make(map[string][]stackcheck.Reference, len(t.Resources))

	for _, name := range sortedKeys(t.Resources) {
		res := t.Resources[name]
		var refs []stackcheck.Reference
		collect := func(r stackcheck.Reference) error {
			refs = append(refs, r)
			return nil
		}
		for _, prop := range sortedKeys(res.Properties) {
			path := "Resources/" + name + "/Properties/" + prop
			if err := walkValue(res.Properties[prop], path, collect); err != nil {
				return nil, err
			}
		}
		deps[name] = refs
	}

	return deps, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
