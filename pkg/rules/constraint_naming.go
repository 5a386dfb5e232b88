package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buildtrack/migration-validator/pkg/types"
)

var constraintRe = regexp.MustCompile(`(?i)\bCONSTRAINT\s+([A-Za-z_]\w*)`)

// constraintPrefixes are the recognized constraint name prefixes.
var constraintPrefixes = []string{"pk_", "fk_", "uk_", "ck_", "chk_"}

// maxIdentifierLength is the Postgres identifier limit; longer names
// are silently truncated by the server, which breaks later DROP
// CONSTRAINT statements, so exceeding it is an error.
const maxIdentifierLength = 63

// ConstraintNaming enforces constraint name prefixes (warning) and the
// identifier length limit (error). Both findings can co-occur for the
// same constraint.
type ConstraintNaming struct{}

func (*ConstraintNaming) Kind() types.RuleKind {
	return types.RuleConstraintNaming
}

func (r *ConstraintNaming) Check(f *File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		code := stripLineComment(line)
		for _, m := range constraintRe.FindAllStringSubmatchIndex(code, -1) {
			name := code[m[2]:m[3]]

			if len(name) > maxIdentifierLength {
				issues = append(issues, types.Issue{
					Kind:     r.Kind(),
					Severity: types.SeverityError,
					Message:  fmt.Sprintf("constraint name %q exceeds the %d-character identifier limit", name, maxIdentifierLength),
					Location: types.Position{Line: i + 1, Column: m[2]},
					Context:  strings.TrimSpace(line),
				})
			}

			if !hasConstraintPrefix(name) {
				issues = append(issues, types.Issue{
					Kind:     r.Kind(),
					Severity: types.SeverityWarning,
					Message:  fmt.Sprintf("constraint %q should be prefixed with one of %s", name, strings.Join(constraintPrefixes, ", ")),
					Location: types.Position{Line: i + 1, Column: m[2]},
					Context:  strings.TrimSpace(line),
				})
			}
		}
	}
	return issues
}

func hasConstraintPrefix(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range constraintPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
