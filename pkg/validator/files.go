package validator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// BadPath records a CLI path argument that could not be used.
type BadPath struct {
	Path string
	Err  error
}

// CollectSQLFiles expands CLI path arguments into the list of files to
// validate. A directory contributes its immediate *.sql entries
// (subdirectories are not recursed into); a file argument is taken
// as-is. A bad path is reported for that argument only and does not
// abort collection of the others.
func CollectSQLFiles(args []string) ([]string, []BadPath) {
	var files []string
	var bad []BadPath

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			bad = append(bad, BadPath{Path: arg, Err: errors.Wrapf(err, "cannot access %s", arg)})
			continue
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			bad = append(bad, BadPath{Path: arg, Err: errors.Wrapf(err, "cannot read directory %s", arg)})
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.EqualFold(filepath.Ext(entry.Name()), ".sql") {
				files = append(files, filepath.Join(arg, entry.Name()))
			}
		}
	}

	return files, bad
}
