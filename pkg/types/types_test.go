package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewResultDerivesStats(t *testing.T) {
	issues := []Issue{
		{Kind: RuleMissingStoredKeyword, Severity: SeverityError},
		{Kind: RuleIndexCreation, Severity: SeverityWarning},
		{Kind: RuleColumnDefinition, Severity: SeverityWarning},
		{Kind: RuleColumnDefinition, Severity: SeverityInfo},
	}
	result := NewResult("m.sql", issues)

	want := Stats{Errors: 1, Warnings: 2, Infos: 1}
	if result.Stats != want {
		t.Errorf("Stats = %+v, want %+v", result.Stats, want)
	}
}

func TestNewResultMarshalsEmptyIssuesAsArray(t *testing.T) {
	data, err := json.Marshal(NewResult("clean.sql", nil))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"issues":[]`) {
		t.Errorf("clean result marshaled as %s, want empty issues array", data)
	}
}

func TestResult_HasErrors(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected bool
	}{
		{
			name:     "no issues",
			result:   NewResult("m.sql", nil),
			expected: false,
		},
		{
			name: "warnings only",
			result: NewResult("m.sql", []Issue{
				{Severity: SeverityWarning},
				{Severity: SeverityInfo},
			}),
			expected: false,
		},
		{
			name: "has errors",
			result: NewResult("m.sql", []Issue{
				{Severity: SeverityError},
			}),
			expected: true,
		},
		{
			name:     "read failure",
			result:   Result{FilePath: "m.sql", Error: "permission denied"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.HasErrors()
			if got != tt.expected {
				t.Errorf("HasErrors() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResult_FixableIssues(t *testing.T) {
	result := NewResult("m.sql", []Issue{
		{Kind: RuleMissingStoredKeyword, Fixable: true, Fix: "x STORED,"},
		{Kind: RuleForeignKeyReference},
		{Kind: RuleCommaPlacement, Fixable: true, Fix: "x)"},
	})

	fixable := result.FixableIssues()
	if len(fixable) != 2 {
		t.Fatalf("len(FixableIssues()) = %d, want 2", len(fixable))
	}
	for _, issue := range fixable {
		if issue.Fix == "" {
			t.Errorf("fixable issue %s has empty fix", issue.Kind)
		}
	}
}
