package rules

import (
	"regexp"
	"strings"

	"github.com/buildtrack/migration-validator/pkg/types"
)

var (
	generatedAlwaysRe = regexp.MustCompile(`(?i)\bGENERATED\s+ALWAYS\s+AS\s*\(`)
	selectKeywordRe   = regexp.MustCompile(`(?i)\bSELECT\b`)
)

// GeneratedColumnSyntax flags generated-column clauses whose expression
// contains a SELECT keyword or whose parentheses are unbalanced on the
// declaring line.
type GeneratedColumnSyntax struct{}

func (*GeneratedColumnSyntax) Kind() types.RuleKind {
	return types.RuleGeneratedColumnSyntax
}

func (r *GeneratedColumnSyntax) Check(f *File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		loc := generatedAlwaysRe.FindStringIndex(line)
		if loc == nil {
			continue
		}

		open := strings.IndexByte(line[loc[0]:], '(') + loc[0]
		end := matchingParen(line, open)
		if end < 0 {
			issues = append(issues, types.Issue{
				Kind:     r.Kind(),
				Severity: types.SeverityError,
				Message:  "unbalanced parentheses in generated column expression",
				Location: types.Position{Line: i + 1, Column: loc[0]},
				Context:  strings.TrimSpace(line),
			})
			continue
		}

		expr := line[open+1 : end]
		if selectKeywordRe.MatchString(expr) {
			issues = append(issues, types.Issue{
				Kind:     r.Kind(),
				Severity: types.SeverityError,
				Message:  "generated column expression must not contain SELECT",
				Location: types.Position{Line: i + 1, Column: loc[0]},
				Context:  strings.TrimSpace(line),
			})
		}
	}
	return issues
}
