package rules

import (
	"regexp"
	"strings"
)

var (
	createTableRe = regexp.MustCompile(`(?i)\bCREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?([A-Za-z_][\w.]*)`)
	blockCloseRe  = regexp.MustCompile(`\)\s*;`)
)

// File is the per-file scan context shared by all rules. It holds the
// line buffer and the set of tables the file itself defines. It is
// built once per file and never mutated during rule execution.
type File struct {
	Path    string
	Content string
	Lines   []string

	defined map[string]struct{}
}

// NewFile splits content into lines and indexes in-file CREATE TABLE
// definitions.
func NewFile(path, content string) *File {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	f := &File{
		Path:    path,
		Content: content,
		Lines:   SplitLines(content),
		defined: make(map[string]struct{}),
	}
	for _, m := range createTableRe.FindAllStringSubmatch(content, -1) {
		name := strings.ToLower(m[1])
		f.defined[name] = struct{}{}
		if rest, ok := strings.CutPrefix(name, "public."); ok {
			f.defined[rest] = struct{}{}
		}
	}
	return f
}

// SplitLines splits raw SQL text into its line buffer. CRLF endings are
// normalized so fixes never reintroduce carriage returns.
func SplitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

// DefinesTable reports whether the file itself creates the table.
func (f *File) DefinesTable(name string) bool {
	name = strings.ToLower(name)
	if _, ok := f.defined[name]; ok {
		return true
	}
	if rest, found := strings.CutPrefix(name, "public."); found {
		_, ok := f.defined[rest]
		return ok
	}
	return false
}

// WithinCreateTable reports whether line i sits inside a CREATE TABLE
// block: a preceding CREATE TABLE with no closing ");" before line i,
// and a closing ");" at or after it. Pure function of the line buffer;
// O(n) per call, acceptable for migration-sized files.
func (f *File) WithinCreateTable(i int) bool {
	if i < 0 || i >= len(f.Lines) {
		return false
	}

	start := -1
	for j := i; j >= 0; j-- {
		if createTableRe.MatchString(f.Lines[j]) {
			start = j
			break
		}
		if j < i && blockCloseRe.MatchString(f.Lines[j]) {
			return false
		}
	}
	if start < 0 {
		return false
	}

	for j := i; j < len(f.Lines); j++ {
		if blockCloseRe.MatchString(f.Lines[j]) {
			return true
		}
	}
	return false
}

// stripLineComment removes a trailing "--" comment. The returned string
// keeps its original offsets for everything before the comment marker.
func stripLineComment(line string) string {
	if i := strings.Index(line, "--"); i >= 0 {
		return line[:i]
	}
	return line
}

// isCommentLine reports whether the trimmed line is entirely a comment.
func isCommentLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "--") || strings.HasPrefix(t, "/*") || strings.HasPrefix(t, "*")
}

// matchingParen returns the offset of the parenthesis closing the one at
// open, or -1 if the text ends first.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
