package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buildtrack/migration-validator/pkg/config"
	"github.com/buildtrack/migration-validator/pkg/types"
)

var (
	columnTypeRe = regexp.MustCompile(`(?i)^\s*([A-Za-z_]\w*)\s+((?:DOUBLE\s+PRECISION|CHARACTER\s+VARYING|TIMESTAMP(?:\s+WITH(?:OUT)?\s+TIME\s+ZONE)?|TIME(?:\s+WITH(?:OUT)?\s+TIME\s+ZONE)?|[A-Za-z_]\w*)(?:\s*\(\s*\d+(?:\s*,\s*\d+)?\s*\))?(?:\s*\[\s*\])?)`)
	primaryKeyRe = regexp.MustCompile(`(?i)\bPRIMARY\s+KEY\b`)
)

// ColumnDefinition sanity-checks column definitions inside CREATE TABLE
// blocks: a type outside the allow-list of primitives and domain types
// is a warning, and an *_id column without PRIMARY KEY or REFERENCES is
// an advisory that a key constraint was probably forgotten.
type ColumnDefinition struct {
	cfg *config.Config
}

func (*ColumnDefinition) Kind() types.RuleKind {
	return types.RuleColumnDefinition
}

func (r *ColumnDefinition) Check(f *File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		if !f.WithinCreateTable(i) || !isColumnDefLine(line) {
			continue
		}
		code := stripLineComment(line)
		m := columnTypeRe.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		name, typeName := m[1], m[2]

		if r.cfg != nil && !r.cfg.IsAllowedType(typeName) {
			issues = append(issues, types.Issue{
				Kind:     r.Kind(),
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("column %q uses unrecognized type %q", name, strings.TrimSpace(typeName)),
				Location: types.Position{Line: i + 1, Column: indexOf(line, name)},
				Context:  strings.TrimSpace(line),
			})
		}

		if strings.HasSuffix(strings.ToLower(name), "_id") &&
			!primaryKeyRe.MatchString(code) && !referencesRe.MatchString(code) {
			issues = append(issues, types.Issue{
				Kind:     r.Kind(),
				Severity: types.SeverityInfo,
				Message:  fmt.Sprintf("column %q looks like a key but has no PRIMARY KEY or REFERENCES", name),
				Location: types.Position{Line: i + 1, Column: indexOf(line, name)},
				Context:  strings.TrimSpace(line),
			})
		}
	}
	return issues
}

func indexOf(line, sub string) int {
	if i := strings.Index(line, sub); i >= 0 {
		return i
	}
	return 0
}
