package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithinCreateTable(t *testing.T) {
	sql := "-- add widgets\n" +
		"CREATE TABLE widgets (\n" +
		"  id UUID PRIMARY KEY,\n" +
		"  name TEXT\n" +
		");\n" +
		"\n" +
		"CREATE INDEX idx_widgets_name ON widgets (name);\n"
	f := NewFile("test.sql", sql)

	tests := []struct {
		name string
		line int
		want bool
	}{
		{"comment before block", 0, false},
		{"create table line", 1, true},
		{"column line", 2, true},
		{"closing line", 4, true},
		{"blank after block", 5, false},
		{"index after block", 6, false},
		{"out of range", 99, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, f.WithinCreateTable(tt.line))
		})
	}
}

func TestFileTableIndex(t *testing.T) {
	sql := "CREATE TABLE IF NOT EXISTS public.widgets (id UUID);\n"
	f := NewFile("test.sql", sql)

	require.True(t, f.DefinesTable("public.widgets"))
	require.True(t, f.DefinesTable("PUBLIC.WIDGETS"))
	require.False(t, f.DefinesTable("gadgets"))
}

func TestSplitLinesNormalizesCRLF(t *testing.T) {
	lines := SplitLines("a\r\nb\r\nc")
	require.Equal(t, []string{"a", "b", "c"}, lines)
}
