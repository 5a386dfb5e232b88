package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buildtrack/migration-validator/pkg/config"
	"github.com/buildtrack/migration-validator/pkg/types"
)

var (
	tableRefRe      = regexp.MustCompile(`(?i)\b(?:FROM|JOIN|UPDATE|DELETE\s+FROM|INSERT\s+INTO)\s+([A-Za-z_][\w.]*)`)
	triggerTimingRe = regexp.MustCompile(`(?i)\b(?:BEFORE|AFTER|INSTEAD\s+OF)\s+(?:INSERT|UPDATE|DELETE|TRUNCATE)\b`)
)

// words the reference regex can capture that are not table names
var nonTableWords = map[string]struct{}{
	"select": {}, "set": {}, "on": {}, "only": {}, "where": {}, "values": {},
	"lateral": {}, "unnest": {}, "generate_series": {}, "now": {},
}

// TableReference flags DML/query references to tables that are neither
// defined in-file nor in the known-table allow-list. Unlike dangling
// foreign keys this is a warning: seed and backfill statements often
// touch tables the validator cannot see.
type TableReference struct {
	cfg *config.Config
}

func (*TableReference) Kind() types.RuleKind {
	return types.RuleTableReference
}

func (r *TableReference) Check(f *File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		code := stripLineComment(line)
		if triggerTimingRe.MatchString(code) {
			continue
		}
		for _, m := range tableRefRe.FindAllStringSubmatchIndex(code, -1) {
			table := code[m[2]:m[3]]
			if _, skip := nonTableWords[strings.ToLower(table)]; skip {
				continue
			}
			// after FROM/JOIN a name directly followed by "(" is a
			// function call; INSERT INTO/UPDATE/DELETE FROM targets are
			// legitimately followed by a column list
			keyword := strings.ToUpper(strings.Fields(code[m[0]:m[1]])[0])
			if keyword == "FROM" || keyword == "JOIN" {
				if rest := code[m[3]:]; strings.HasPrefix(strings.TrimLeft(rest, " "), "(") {
					continue
				}
			}
			if f.DefinesTable(table) || (r.cfg != nil && r.cfg.IsKnownTable(table)) {
				continue
			}
			issues = append(issues, types.Issue{
				Kind:     r.Kind(),
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("reference to unknown table %q", table),
				Location: types.Position{Line: i + 1, Column: m[2]},
				Context:  strings.TrimSpace(line),
			})
		}
	}
	return issues
}
