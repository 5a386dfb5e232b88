package rules

import (
	"strings"

	"github.com/buildtrack/migration-validator/pkg/types"
)

// SubqueryInGeneratedColumn flags SELECT anywhere inside a generated
// column expression, including nested function calls and expressions
// spanning multiple lines. Postgres rejects subqueries in generation
// expressions, so the validator blocks on them.
type SubqueryInGeneratedColumn struct{}

func (*SubqueryInGeneratedColumn) Kind() types.RuleKind {
	return types.RuleSubqueryInGeneratedColumn
}

func (r *SubqueryInGeneratedColumn) Check(f *File) []types.Issue {
	var issues []types.Issue
	for _, m := range generatedAlwaysRe.FindAllStringIndex(f.Content, -1) {
		open := strings.IndexByte(f.Content[m[0]:], '(') + m[0]
		end := matchingParen(f.Content, open)
		if end < 0 {
			// unbalanced; generated-column-syntax reports it
			continue
		}
		expr := f.Content[open+1 : end]
		if !selectKeywordRe.MatchString(expr) {
			continue
		}

		line, col := offsetToPosition(f.Content, m[0])
		issues = append(issues, types.Issue{
			Kind:     r.Kind(),
			Severity: types.SeverityError,
			Message:  "subquery in generated column expression",
			Location: types.Position{Line: line, Column: col},
			Context:  strings.TrimSpace(f.Lines[line-1]),
		})
	}
	return issues
}

// offsetToPosition converts a byte offset in content to a 1-based line
// number and 0-based column.
func offsetToPosition(content string, offset int) (line, col int) {
	line = 1
	col = 0
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}
