// Package types defines the data model shared by the validator, rules and reporters.
package types

// RuleKind identifies a validation rule.
type RuleKind string

const (
	RuleGeneratedColumnSyntax     RuleKind = "generated-column-syntax"
	RuleForeignKeyReference       RuleKind = "foreign-key-reference"
	RuleSubqueryInGeneratedColumn RuleKind = "subquery-in-generated-column"
	RuleMissingStoredKeyword      RuleKind = "missing-stored-keyword"
	RuleCommaPlacement            RuleKind = "comma-placement"
	RuleTableReference            RuleKind = "table-reference"
	RuleColumnDefinition          RuleKind = "column-definition"
	RuleIndexCreation             RuleKind = "index-creation"
	RuleConstraintNaming          RuleKind = "constraint-naming"
)

// Severity is the severity level of an issue. Only error-level issues
// affect the process exit code.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Position locates an issue in a file. Line is 1-based, Column is the
// 0-based offset within that line.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Issue is a single finding produced by a rule.
type Issue struct {
	Kind     RuleKind `json:"kind" yaml:"kind"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	Location Position `json:"location" yaml:"location"`
	// Context is the offending source line, trimmed.
	Context string `json:"context" yaml:"context"`
	Fixable bool   `json:"fixable" yaml:"fixable"`
	// Fix is the full replacement for the offending line. Non-empty iff Fixable.
	Fix string `json:"fix,omitempty" yaml:"fix,omitempty"`
}

// Stats aggregates issue counts by severity.
type Stats struct {
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Infos    int `json:"infos" yaml:"infos"`
}

// Result is the outcome of validating a single file.
type Result struct {
	FilePath string  `json:"filePath" yaml:"filePath"`
	Issues   []Issue `json:"issues" yaml:"issues"`
	Stats    Stats   `json:"stats" yaml:"stats"`
	// Error is set when the file could not be read or written.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewResult builds a Result with Stats derived from the issues.
// Stats is never set independently. A nil issue slice becomes an empty
// one so clean files serialize with an empty issues array.
func NewResult(filePath string, issues []Issue) Result {
	if issues == nil {
		issues = []Issue{}
	}
	return Result{
		FilePath: filePath,
		Issues:   issues,
		Stats:    tally(issues),
	}
}

func tally(issues []Issue) Stats {
	var s Stats
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
	}
	return s
}

// HasErrors reports whether the result contains error-level issues or a
// file processing error.
func (r Result) HasErrors() bool {
	return r.Stats.Errors > 0 || r.Error != ""
}

// FixableIssues returns the subset of issues that carry a fix.
func (r Result) FixableIssues() []Issue {
	var fixable []Issue
	for _, issue := range r.Issues {
		if issue.Fixable {
			fixable = append(fixable, issue)
		}
	}
	return fixable
}
