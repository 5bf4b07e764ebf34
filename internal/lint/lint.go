// Package lint runs cfn-lint-go over template files and converts its
// matches to stackcheck lint issues.
package lint

import (
	"fmt"
	"os"
	"strings"

	cfnlint "github.com/lex00/cfn-lint-go/pkg/lint"

	stackcheck "github.com/lex00/stackcheck-go"
)

// Run lints the template file at path. The result's Success flag reflects
// Error-level matches only; warnings and informational matches are
// reported but acceptable.
func Run(path string) (*stackcheck.LintResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("template file not found: %w", err)
	}

	linter := cfnlint.New(cfnlint.Options{})
	matches, err := linter.LintFile(path)
	if err != nil {
		return nil, fmt.Errorf("linter error: %w", err)
	}

	result := &stackcheck.LintResult{Success: true}
	for _, match := range matches {
		issue := toIssue(match, path)
		if issue.Level == "Error" {
			result.Success = false
		}
		result.Issues = append(result.Issues, issue)
	}

	return result, nil
}

func toIssue(match cfnlint.Match, file string) stackcheck.LintIssue {
	return stackcheck.LintIssue{
		Rule:    match.Rule.ID,
		Level:   match.Level,
		Message: match.Message,
		Path:    formatPath(match.Location.Path),
		File:    file,
	}
}

// formatPath joins a match's document path segments,
// e.g. ["Resources", "InvokeRole", "Type"] -> "Resources/InvokeRole/Type".
func formatPath(path []any) string {
	if len(path) == 0 {
		return ""
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(parts, "/")
}
