package rules

import (
	"regexp"
	"strings"

	"github.com/buildtrack/migration-validator/pkg/types"
)

var (
	trailingCommaRe = regexp.MustCompile(`,\s*\)`)
	columnDefRe     = regexp.MustCompile(`(?i)^\s*([A-Za-z_]\w*)\s+[A-Za-z_]`)
)

// keywords that disqualify a line from being treated as a column definition
var nonColumnKeywords = map[string]struct{}{
	"create": {}, "alter": {}, "drop": {}, "constraint": {}, "primary": {},
	"foreign": {}, "unique": {}, "check": {}, "references": {}, "like": {},
	"insert": {}, "update": {}, "delete": {}, "select": {}, "grant": {},
	"comment": {}, "on": {}, "values": {}, "exclude": {},
}

// CommaPlacement flags two comma defects inside CREATE TABLE blocks: a
// comma immediately before a closing parenthesis (error, fix removes
// it), and a probable missing comma between two consecutive column
// definitions (warning, fix appends one). The second check is a
// heuristic; false positives on exotic layouts are accepted.
type CommaPlacement struct{}

func (*CommaPlacement) Kind() types.RuleKind {
	return types.RuleCommaPlacement
}

func (r *CommaPlacement) Check(f *File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		if loc := trailingCommaRe.FindStringIndex(stripLineComment(line)); loc != nil {
			issues = append(issues, types.Issue{
				Kind:     r.Kind(),
				Severity: types.SeverityError,
				Message:  "trailing comma before closing parenthesis",
				Location: types.Position{Line: i + 1, Column: loc[0]},
				Context:  strings.TrimSpace(line),
				Fixable:  true,
				Fix:      line[:loc[0]] + line[loc[0]+1:],
			})
		}

		if !f.WithinCreateTable(i) || !isColumnDefLine(line) {
			continue
		}
		// a trailing comment makes the append ambiguous; leave it alone
		if strings.Contains(line, "--") {
			continue
		}
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" || strings.HasSuffix(trimmed, ",") ||
			strings.HasSuffix(trimmed, "(") || strings.HasSuffix(trimmed, ";") {
			continue
		}

		next, ok := nextCodeLine(f.Lines, i)
		if !ok {
			continue
		}
		nextTrimmed := strings.TrimSpace(next)
		if strings.HasPrefix(nextTrimmed, ")") || !isColumnDefLine(next) {
			continue
		}

		issues = append(issues, types.Issue{
			Kind:     r.Kind(),
			Severity: types.SeverityWarning,
			Message:  "possible missing comma after column definition",
			Location: types.Position{Line: i + 1, Column: len(trimmed) - 1},
			Context:  strings.TrimSpace(line),
			Fixable:  true,
			Fix:      trimmed + ",",
		})
	}

	return issues
}

// isColumnDefLine reports whether the line looks like "name type ...",
// excluding statement and table-constraint keywords.
func isColumnDefLine(line string) bool {
	if isCommentLine(line) {
		return false
	}
	m := columnDefRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	_, excluded := nonColumnKeywords[strings.ToLower(m[1])]
	return !excluded
}

// nextCodeLine returns the first non-empty, non-comment line after i.
func nextCodeLine(lines []string, i int) (string, bool) {
	for j := i + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" || isCommentLine(lines[j]) {
			continue
		}
		return lines[j], true
	}
	return "", false
}
