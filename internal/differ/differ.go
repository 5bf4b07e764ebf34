// Package differ provides semantic comparison of templates.
package differ

import (
	"fmt"
	"reflect"
	"sort"

	stackcheck "github.com/lex00/stackcheck-go"
	"github.com/lex00/stackcheck-go/internal/template"
)

// Options configures the differ.
type Options struct {
	// IgnoreOrder ignores array element order in property comparisons.
	IgnoreOrder bool
}

// Compare compares two templates section by section and returns the
// differences.
func Compare(t1, t2 *stackcheck.Template, opts Options) (*stackcheck.DiffResult, error) {
	result := &stackcheck.DiffResult{}

	compareResources(t1, t2, opts, &result.Diff)
	compareParameters(t1, t2, &result.Diff)
	compareOutputs(t1, t2, &result.Diff)

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Summary = stackcheck.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result, nil
}

// CompareFiles loads and compares two template files. Both templates must
// be valid on their own before they are compared.
func CompareFiles(file1, file2 string, opts Options) (*stackcheck.DiffResult, error) {
	t1, err := template.Load(file1)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file1, err)
	}

	t2, err := template.Load(file2)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file2, err)
	}

	return Compare(t1, t2, opts)
}

func compareResources(t1, t2 *stackcheck.Template, opts Options, diff *stackcheck.TemplateDiff) {
	for name, def := range t2.Resources {
		if _, exists := t1.Resources[name]; !exists {
			diff.Added = append(diff.Added, stackcheck.DiffEntry{
				Section: "Resources",
				Name:    name,
				Type:    def.Type,
			})
		}
	}

	for name, def := range t1.Resources {
		if _, exists := t2.Resources[name]; !exists {
			diff.Removed = append(diff.Removed, stackcheck.DiffEntry{
				Section: "Resources",
				Name:    name,
				Type:    def.Type,
			})
		}
	}

	for name, def1 := range t1.Resources {
		def2, exists := t2.Resources[name]
		if !exists {
			continue
		}

		var changes []string
		if def1.Type != def2.Type {
			changes = append(changes, fmt.Sprintf("Type changed: %s → %s", def1.Type, def2.Type))
		}
		changes = append(changes, compareProperties("", def1.Properties, def2.Properties, opts)...)
		if !equalStringSlices(def1.DependsOn, def2.DependsOn) {
			changes = append(changes, "DependsOn changed")
		}

		if len(changes) > 0 {
			diff.Modified = append(diff.Modified, stackcheck.DiffEntry{
				Section: "Resources",
				Name:    name,
				Type:    def1.Type,
				Changes: changes,
			})
		}
	}
}

func compareParameters(t1, t2 *stackcheck.Template, diff *stackcheck.TemplateDiff) {
	for name, p := range t2.Parameters {
		if _, exists := t1.Parameters[name]; !exists {
			diff.Added = append(diff.Added, stackcheck.DiffEntry{
				Section: "Parameters",
				Name:    name,
				Type:    p.Type,
			})
		}
	}

	for name, p1 := range t1.Parameters {
		p2, exists := t2.Parameters[name]
		if !exists {
			diff.Removed = append(diff.Removed, stackcheck.DiffEntry{
				Section: "Parameters",
				Name:    name,
				Type:    p1.Type,
			})
			continue
		}

		var changes []string
		if p1.Type != p2.Type {
			changes = append(changes, fmt.Sprintf("Type changed: %s → %s", p1.Type, p2.Type))
		}
		if p1.Description != p2.Description {
			changes = append(changes, "Description changed")
		}
		if !reflect.DeepEqual(p1.Default, p2.Default) {
			changes = append(changes, "Default changed")
		}
		if !reflect.DeepEqual(p1.AllowedValues, p2.AllowedValues) {
			changes = append(changes, "AllowedValues changed")
		}

		if len(changes) > 0 {
			diff.Modified = append(diff.Modified, stackcheck.DiffEntry{
				Section: "Parameters",
				Name:    name,
				Type:    p1.Type,
				Changes: changes,
			})
		}
	}
}

func compareOutputs(t1, t2 *stackcheck.Template, diff *stackcheck.TemplateDiff) {
	for name := range t2.Outputs {
		if _, exists := t1.Outputs[name]; !exists {
			diff.Added = append(diff.Added, stackcheck.DiffEntry{
				Section: "Outputs",
				Name:    name,
			})
		}
	}

	for name, o1 := range t1.Outputs {
		o2, exists := t2.Outputs[name]
		if !exists {
			diff.Removed = append(diff.Removed, stackcheck.DiffEntry{
				Section: "Outputs",
				Name:    name,
			})
			continue
		}

		var changes []string
		if o1.Description != o2.Description {
			changes = append(changes, "Description changed")
		}
		if !reflect.DeepEqual(o1.Value, o2.Value) {
			changes = append(changes, "Value changed")
		}

		if len(changes) > 0 {
			diff.Modified = append(diff.Modified, stackcheck.DiffEntry{
				Section: "Outputs",
				Name:    name,
				Changes: changes,
			})
		}
	}
}

// compareProperties recursively compares property maps and returns the
// changed paths.
func compareProperties(prefix string, props1, props2 map[string]any, opts Options) []string {
	var changes []string

	for key, val2 := range props2 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		val1, exists := props1[key]
		if !exists {
			changes = append(changes, fmt.Sprintf("%s added", path))
			continue
		}

		m1, ok1 := val1.(map[string]any)
		m2, ok2 := val2.(map[string]any)
		if ok1 && ok2 {
			changes = append(changes, compareProperties(path, m1, m2, opts)...)
			continue
		}

		if !deepEqual(val1, val2, opts) {
			changes = append(changes, fmt.Sprintf("%s modified", path))
		}
	}

	for key := range props1 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if _, exists := props2[key]; !exists {
			changes = append(changes, fmt.Sprintf("%s removed", path))
		}
	}

	sort.Strings(changes)
	return changes
}

// deepEqual compares two values, optionally ignoring sequence order.
func deepEqual(a, b any, opts Options) bool {
	if opts.IgnoreOrder {
		if sa, ok := a.([]any); ok {
			if sb, ok := b.([]any); ok {
				return equalUnordered(sa, sb)
			}
		}
	}
	return reflect.DeepEqual(a, b)
}

// equalUnordered reports whether two sequences hold the same elements
// regardless of position.
func equalUnordered(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	matched := make([]bool, len(b))
	for _, av := range a {
		found := false
		for i, bv := range b {
			if !matched[i] && reflect.DeepEqual(av, bv) {
				matched[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sortEntries sorts diff entries by section, then logical name.
func sortEntries(entries []stackcheck.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Section != entries[j].Section {
			return entries[i].Section < entries[j].Section
		}
		return entries[i].Name < entries[j].Name
	})
}
