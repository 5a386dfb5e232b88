package validator

import (
	"strings"

	"github.com/buildtrack/migration-validator/pkg/rules"
	"github.com/buildtrack/migration-validator/pkg/types"
)

// ApplyFixes returns content with fixable issues' lines replaced by
// their fix text. Fixes are line-local and never add or remove lines.
// At most one fix is applied per line and pass: every fix is computed
// from the original line, so applying a second one to the same line
// would discard the first. Callers that need every fix applied
// revalidate and reapply; see Validator.FixContent.
func ApplyFixes(content string, issues []types.Issue) string {
	lines := rules.SplitLines(content)
	applied := make(map[int]bool)
	changed := false

	for _, issue := range issues {
		if !issue.Fixable || issue.Fix == "" {
			continue
		}
		idx := issue.Location.Line - 1
		if idx < 0 || idx >= len(lines) || applied[idx] {
			continue
		}
		lines[idx] = issue.Fix
		applied[idx] = true
		changed = true
	}
	if !changed {
		return content
	}
	return strings.Join(lines, "\n")
}

// maxFixPasses bounds the fix/revalidate loop. Each pass applies at
// most one fix per line, so a line flagged by several rules converges
// in as many passes as it has fixes.
const maxFixPasses = 5

// FixContent applies fixable issues and revalidates between passes so
// fixes targeting the same line compose instead of clobbering each
// other. It returns the fixed content and the validation result for it.
func (v *Validator) FixContent(path, content string) (string, types.Result) {
	result := v.ValidateContent(path, content)
	for pass := 0; pass < maxFixPasses; pass++ {
		if len(result.FixableIssues()) == 0 {
			break
		}
		fixed := ApplyFixes(content, result.Issues)
		if fixed == content {
			break
		}
		content = fixed
		result = v.ValidateContent(path, content)
	}
	return content, result
}
