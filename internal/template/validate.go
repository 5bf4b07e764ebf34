package template

import (
	"strconv"
	"strings"

	stackcheck "github.com/lex00/stackcheck-go"
)

// primitiveTypes are the recognized non-provider parameter types.
var primitiveTypes = map[string]bool{
	"String":             true,
	"Number":             true,
	"CommaDelimitedList": true,
}

// Validate checks a template for unrecognized parameter types, malformed
// reference expressions, and references to undeclared logical names.
// Templates returned by Load and Parse are already validated; Validate is
// exported for templates constructed or deserialized elsewhere.
func Validate(t *stackcheck.Template) error {
	for _, name := range sortedKeys(t.Parameters) {
		p := t.Parameters[name]
		if !validParameterType(p.Type) {
			return &SchemaError{
				Path: "Parameters/" + name + "/Type",
				Msg:  "unrecognized parameter type " + strconv.Quote(p.Type),
			}
		}
	}

	for _, name := range sortedKeys(t.Resources) {
		res := t.Resources[name]
		for i, dep := range res.DependsOn {
			if _, ok := t.Resources[dep]; !ok {
				return &UnresolvedReferenceError{
					Path: "Resources/" + name + "/DependsOn/" + strconv.Itoa(i),
					Name: dep,
				}
			}
		}
	}

	refs, err := References(t)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if err := resolve(t, ref); err != nil {
			return err
		}
	}

	return nil
}

// resolve checks that a reference points at a declared logical name. Ref
// resolves against parameters first, then resources; GetAtt resolves
// against resources only.
func resolve(t *stackcheck.Template, ref stackcheck.Reference) error {
	switch ref.Kind {
	case stackcheck.KindRef:
		if _, ok := t.Parameters[ref.Name]; ok {
			return nil
		}
		if _, ok := t.Resources[ref.Name]; ok {
			return nil
		}
	case stackcheck.KindGetAtt:
		if _, ok := t.Resources[ref.Name]; ok {
			return nil
		}
	}
	return &UnresolvedReferenceError{Path: ref.Path, Name: ref.Name}
}

// validParameterType reports whether a parameter type is a recognized
// primitive, a provider-specific type, or a list of either.
func validParameterType(typ string) bool {
	if primitiveTypes[typ] {
		return true
	}
	if strings.HasPrefix(typ, "AWS::") {
		return true
	}
	if inner, ok := strings.CutPrefix(typ, "List<"); ok && strings.HasSuffix(inner, ">") {
		return validParameterType(strings.TrimSuffix(inner, ">"))
	}
	return false
}
