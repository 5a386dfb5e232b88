package rules

import (
	"regexp"
	"strings"

	"github.com/buildtrack/migration-validator/pkg/types"
)

var storedKeywordRe = regexp.MustCompile(`(?i)\bSTORED\b`)

// MissingStoredKeyword flags generated-column clauses without the
// STORED keyword. Postgres only supports stored generated columns, so
// the keyword is mandatory. The fix appends STORED before the trailing
// comma or semicolon.
type MissingStoredKeyword struct{}

func (*MissingStoredKeyword) Kind() types.RuleKind {
	return types.RuleMissingStoredKeyword
}

func (r *MissingStoredKeyword) Check(f *File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		loc := generatedAlwaysRe.FindStringIndex(line)
		if loc == nil || storedKeywordRe.MatchString(line) {
			continue
		}

		open := strings.IndexByte(line[loc[0]:], '(') + loc[0]
		if matchingParen(line, open) < 0 {
			// expression continues on later lines; no line-local fix
			continue
		}

		issues = append(issues, types.Issue{
			Kind:     r.Kind(),
			Severity: types.SeverityError,
			Message:  "generated column is missing the STORED keyword",
			Location: types.Position{Line: i + 1, Column: loc[0]},
			Context:  strings.TrimSpace(line),
			Fixable:  true,
			Fix:      appendStored(line),
		})
	}
	return issues
}

// appendStored inserts " STORED" before the trailing comma or semicolon,
// preserving trailing whitespace as-is when there is neither.
func appendStored(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	switch {
	case strings.HasSuffix(trimmed, ","), strings.HasSuffix(trimmed, ";"):
		return trimmed[:len(trimmed)-1] + " STORED" + trimmed[len(trimmed)-1:]
	default:
		return trimmed + " STORED"
	}
}
