package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixableMigration = `CREATE TABLE reports (
  id UUID PRIMARY KEY,
  label TEXT,
  full_name TEXT GENERATED ALWAYS AS (label || ' ' || label),
  notes TEXT,);

CREATE INDEX reports_label ON reports (label);
`

func TestApplyFixesIdempotent(t *testing.T) {
	v := New()
	result := v.ValidateContent("fixable.sql", fixableMigration)
	require.NotEmpty(t, result.FixableIssues())

	fixed := v.ValidateContent("fixable.sql", ApplyFixes(fixableMigration, result.Issues))
	require.Empty(t, fixed.FixableIssues())
	require.Empty(t, fixed.Issues)
}

func TestApplyFixesContent(t *testing.T) {
	fixed := ApplyFixes(fixableMigration, New().ValidateContent("fixable.sql", fixableMigration).Issues)

	require.Contains(t, fixed, "GENERATED ALWAYS AS (label || ' ' || label) STORED,")
	require.Contains(t, fixed, "  notes TEXT);")
	require.Contains(t, fixed, "CREATE INDEX idx_reports_label ON reports (label);")
	require.Equal(t, strings.Count(fixableMigration, "\n"), strings.Count(fixed, "\n"))
}

func TestFixContentComposesSameLineFixes(t *testing.T) {
	// line 3 is flagged by two rules with two different fixes: the
	// STORED insertion and the missing trailing comma must both land.
	sql := "CREATE TABLE people (\n" +
		"  id UUID PRIMARY KEY,\n" +
		"  full_name TEXT GENERATED ALWAYS AS (first || ' ' || last)\n" +
		"  email TEXT\n" +
		");\n"
	v := New()
	before := v.ValidateContent("people.sql", sql)
	require.Greater(t, len(before.FixableIssues()), 1)

	fixed, after := v.FixContent("people.sql", sql)
	require.Empty(t, after.FixableIssues())
	require.Empty(t, after.Issues)
	require.Contains(t, fixed, "GENERATED ALWAYS AS (first || ' ' || last) STORED,")
	require.Equal(t, strings.Count(sql, "\n"), strings.Count(fixed, "\n"))
}

func TestApplyFixesNoChangeOnClean(t *testing.T) {
	result := New().ValidateContent("clean.sql", cleanMigration)
	require.Equal(t, cleanMigration, ApplyFixes(cleanMigration, result.Issues))
}
