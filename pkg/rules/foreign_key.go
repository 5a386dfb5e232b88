package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buildtrack/migration-validator/pkg/config"
	"github.com/buildtrack/migration-validator/pkg/types"
)

var referencesRe = regexp.MustCompile(`(?i)\bREFERENCES\s+([A-Za-z_][\w.]*)\s*\(`)

// ForeignKeyReference flags REFERENCES targets that are neither defined
// in the file nor present in the known-table allow-list. A dangling
// foreign key fails outright when the migration is applied, so this is
// an error rather than a heuristic warning.
type ForeignKeyReference struct {
	cfg *config.Config
}

func (*ForeignKeyReference) Kind() types.RuleKind {
	return types.RuleForeignKeyReference
}

func (r *ForeignKeyReference) Check(f *File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		code := stripLineComment(line)
		for _, m := range referencesRe.FindAllStringSubmatchIndex(code, -1) {
			table := code[m[2]:m[3]]
			if f.DefinesTable(table) || (r.cfg != nil && r.cfg.IsKnownTable(table)) {
				continue
			}
			issues = append(issues, types.Issue{
				Kind:     r.Kind(),
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("foreign key references undefined table %q", table),
				Location: types.Position{Line: i + 1, Column: m[2]},
				Context:  strings.TrimSpace(line),
			})
		}
	}
	return issues
}
