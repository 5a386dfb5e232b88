package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildtrack/migration-validator/pkg/types"
)

const cleanMigration = `-- add tasks table
CREATE TABLE tasks (
  id UUID PRIMARY KEY,
  project_id UUID REFERENCES projects(id),
  title TEXT NOT NULL,
  status task_status NOT NULL DEFAULT 'open',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX idx_tasks_project ON tasks (project_id);
`

func TestValidateContentClean(t *testing.T) {
	v := New()
	result := v.ValidateContent("clean.sql", cleanMigration)

	require.Empty(t, result.Issues)
	require.Equal(t, types.Stats{}, result.Stats)
	require.False(t, result.HasErrors())
}

func TestValidateContentRuleOrdering(t *testing.T) {
	// index issue (rule 8) in the text before the foreign key issue
	// (rule 2): output must still be rule-major.
	sql := "CREATE INDEX bad_name ON tasks (title);\n" +
		"ALTER TABLE tasks ADD COLUMN owner UUID REFERENCES mystery_table(id);\n"
	v := New()
	result := v.ValidateContent("order.sql", sql)

	require.GreaterOrEqual(t, len(result.Issues), 2)
	require.Equal(t, types.RuleForeignKeyReference, result.Issues[0].Kind)
	require.Equal(t, types.RuleIndexCreation, result.Issues[1].Kind)
}

func TestStatsDerivedFromIssues(t *testing.T) {
	sql := "ALTER TABLE tasks ADD COLUMN owner UUID REFERENCES mystery_table(id);\n" +
		"CREATE INDEX bad_name ON tasks (title);\n"
	v := New()
	result := v.ValidateContent("stats.sql", sql)

	var errs, warns, infos int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case types.SeverityError:
			errs++
		case types.SeverityWarning:
			warns++
		case types.SeverityInfo:
			infos++
		}
	}
	require.Equal(t, types.Stats{Errors: errs, Warnings: warns, Infos: infos}, result.Stats)
	require.True(t, result.HasErrors())
}

func TestHasFailuresAcrossFileSet(t *testing.T) {
	dir := t.TempDir()
	dirty := filepath.Join(dir, "001_dirty.sql")
	clean := filepath.Join(dir, "002_clean.sql")
	require.NoError(t, os.WriteFile(dirty,
		[]byte("ALTER TABLE tasks ADD COLUMN owner UUID REFERENCES mystery_table(id);\n"), 0o644))
	require.NoError(t, os.WriteFile(clean,
		[]byte("CREATE INDEX idx_tasks_status ON tasks (status);\n"), 0o644))

	files, badPaths := CollectSQLFiles([]string{dir})
	require.Empty(t, badPaths)
	require.Len(t, files, 2)

	v := New()
	var results []types.Result
	for _, file := range files {
		result, err := v.ValidateFile(file)
		require.NoError(t, err)
		results = append(results, result)
	}
	require.True(t, HasFailures(results))

	onlyClean, err := v.ValidateFile(clean)
	require.NoError(t, err)
	require.False(t, HasFailures([]types.Result{onlyClean}))

	require.False(t, HasFailures(nil))
	require.True(t, HasFailures([]types.Result{
		{FilePath: "gone.sql", Error: "no such file"},
	}))
}

func TestValidateFileMissing(t *testing.T) {
	v := New()
	_, err := v.ValidateFile(filepath.Join(t.TempDir(), "nope.sql"))
	require.Error(t, err)
}

func TestValidateFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.sql")
	require.NoError(t, os.WriteFile(path, []byte(cleanMigration), 0o644))

	v := New()
	result, err := v.ValidateFile(path)
	require.NoError(t, err)
	require.Empty(t, result.Issues)
	require.Equal(t, path, result.FilePath)
}
