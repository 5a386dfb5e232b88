// Package rules implements the validation rule battery. Every rule is
// an independent line/regex heuristic over the same line buffer; rules
// never consume each other's output, and a malformed line yields issues
// rather than aborting the scan.
package rules

import (
	"github.com/buildtrack/migration-validator/pkg/config"
	"github.com/buildtrack/migration-validator/pkg/types"
)

// Rule is a single heuristic check.
type Rule interface {
	// Kind returns the rule identifier used in issue output.
	Kind() types.RuleKind

	// Check scans the file and returns zero or more issues, in
	// line-then-match order.
	Check(f *File) []types.Issue
}

// Registry holds rules in a fixed execution order. Output ordering is
// rule-major: all issues from the first rule, then the second, and so on.
type Registry struct {
	rules []Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a rule. Registration order is execution order.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Rules returns the registered rules in execution order.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// NewDefaultRegistry builds the standard battery in its documented order.
func NewDefaultRegistry(cfg *config.Config) *Registry {
	r := NewRegistry()
	r.Register(&GeneratedColumnSyntax{})
	r.Register(&ForeignKeyReference{cfg: cfg})
	r.Register(&SubqueryInGeneratedColumn{})
	r.Register(&MissingStoredKeyword{})
	r.Register(&CommaPlacement{})
	r.Register(&TableReference{cfg: cfg})
	r.Register(&ColumnDefinition{cfg: cfg})
	r.Register(&IndexCreation{})
	r.Register(&ConstraintNaming{})
	return r
}
