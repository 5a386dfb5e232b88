// Package validator provides a high-level API for validating Postgres
// migration files against the rule battery.
//
// # Quick Start
//
//	v := validator.New()
//	result, err := v.ValidateFile("migrations/20260815_add_tasks.sql")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.HasErrors() {
//	    // block the migration
//	}
package validator

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/buildtrack/migration-validator/pkg/config"
	"github.com/buildtrack/migration-validator/pkg/rules"
	"github.com/buildtrack/migration-validator/pkg/types"
)

// Validator runs the rule battery against migration files. It is
// stateless across files; every file is validated independently.
type Validator struct {
	cfg      *config.Config
	registry *rules.Registry
}

// Option customizes a Validator.
type Option func(*Validator)

// WithConfig replaces the default allow-list configuration.
func WithConfig(cfg *config.Config) Option {
	return func(v *Validator) {
		v.cfg = cfg
	}
}

// WithRegistry replaces the default rule battery.
func WithRegistry(r *rules.Registry) Option {
	return func(v *Validator) {
		v.registry = r
	}
}

// New creates a Validator with the default configuration and rule set.
func New(opts ...Option) *Validator {
	v := &Validator{cfg: config.Default()}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = rules.NewDefaultRegistry(v.cfg)
	}
	return v
}

// ValidateContent validates SQL text. Issues are ordered by rule
// execution order, then by line within each rule. Stats is derived from
// the issues.
func (v *Validator) ValidateContent(path, content string) types.Result {
	file := rules.NewFile(path, content)

	var issues []types.Issue
	for _, rule := range v.registry.Rules() {
		found := rule.Check(file)
		slog.Debug("rule executed", "rule", rule.Kind(), "file", path, "issues", len(found))
		issues = append(issues, found...)
	}
	return types.NewResult(path, issues)
}

// HasFailures reports whether any result in the set should fail the
// run: an error-severity issue or a file that could not be processed.
// Warnings and infos never fail a run.
func HasFailures(results []types.Result) bool {
	for _, result := range results {
		if result.HasErrors() {
			return true
		}
	}
	return false
}

// ValidateFile reads and validates a file. A read failure is returned
// as an error so the caller can report it without aborting sibling
// files.
func (v *Validator) ValidateFile(path string) (types.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.Result{FilePath: path}, errors.Wrapf(err, "failed to read %s", path)
	}
	return v.ValidateContent(path, string(content)), nil
}
