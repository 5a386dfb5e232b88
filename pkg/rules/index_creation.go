package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buildtrack/migration-validator/pkg/types"
)

var createIndexRe = regexp.MustCompile(`(?i)\bCREATE\s+(?:UNIQUE\s+)?INDEX\s+(?:CONCURRENTLY\s+)?(?:IF\s+NOT\s+EXISTS\s+)?([A-Za-z_]\w*)\s+ON\s+([A-Za-z_][\w.]*)\s*(?:USING\s+\w+\s*)?\(([^)]*)\)`)

// IndexCreation enforces the idx_ naming convention (fix renames the
// index) and flags duplicate indexes on the same (table, columns) tuple
// within the file.
type IndexCreation struct{}

func (*IndexCreation) Kind() types.RuleKind {
	return types.RuleIndexCreation
}

func (r *IndexCreation) Check(f *File) []types.Issue {
	var issues []types.Issue
	seen := make(map[string]int) // (table, columns) -> first line

	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		code := stripLineComment(line)
		m := createIndexRe.FindStringSubmatchIndex(code)
		if m == nil {
			continue
		}
		name := code[m[2]:m[3]]
		table := strings.ToLower(code[m[4]:m[5]])
		columns := normalizeIndexColumns(code[m[6]:m[7]])

		if !strings.HasPrefix(strings.ToLower(name), "idx_") {
			issues = append(issues, types.Issue{
				Kind:     r.Kind(),
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("index %q should be prefixed with idx_", name),
				Location: types.Position{Line: i + 1, Column: m[2]},
				Context:  strings.TrimSpace(line),
				Fixable:  true,
				Fix:      line[:m[2]] + "idx_" + line[m[2]:],
			})
		}

		key := table + "(" + columns + ")"
		if first, dup := seen[key]; dup {
			issues = append(issues, types.Issue{
				Kind:     r.Kind(),
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("duplicate index on %s, first defined on line %d", key, first),
				Location: types.Position{Line: i + 1, Column: m[0]},
				Context:  strings.TrimSpace(line),
			})
		} else {
			seen[key] = i + 1
		}
	}
	return issues
}

// normalizeIndexColumns lowercases and strips spacing so column lists
// compare structurally, e.g. "a, B" == "A,b".
func normalizeIndexColumns(list string) string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, ",")
}
