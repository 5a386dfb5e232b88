// Package report formats validation results for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/buildtrack/migration-validator/pkg/types"
)

// Options controls text output.
type Options struct {
	// Verbose includes the computed fix text so a user can preview
	// fixes before applying them.
	Verbose bool
	// Quiet suppresses warning and info issues. Errors are always shown.
	Quiet bool
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	faint        = color.New(color.Faint)
)

func dimmed(s string) string {
	return faint.Sprint(s)
}

// Text writes a human-readable, per-file report followed by a SUMMARY
// block with aggregate counts.
func Text(w io.Writer, results []types.Result, opts Options) {
	var totalIssues, totalErrors, totalWarnings int

	for _, result := range results {
		totalIssues += len(result.Issues)
		totalErrors += result.Stats.Errors
		totalWarnings += result.Stats.Warnings

		if result.Error != "" {
			fmt.Fprintf(w, "%s\n", result.FilePath)
			fmt.Fprintf(w, "  %s %s\n\n", errorColor.Sprint("✗"), result.Error)
			continue
		}

		shown := visibleIssues(result.Issues, opts.Quiet)
		if len(shown) == 0 {
			continue
		}

		fmt.Fprintf(w, "%s\n", result.FilePath)
		for _, issue := range shown {
			fmt.Fprintf(w, "  %s %d:%d %s %s\n",
				icon(issue.Severity),
				issue.Location.Line, issue.Location.Column,
				issue.Message,
				dimmed("["+string(issue.Kind)+"]"))
			fmt.Fprintf(w, "      %s\n", dimmed(issue.Context))
			if opts.Verbose && issue.Fixable {
				fmt.Fprintf(w, "      fix: %s\n", issue.Fix)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintf(w, "  Files processed: %d\n", len(results))
	fmt.Fprintf(w, "  Total issues:    %d\n", totalIssues)
	fmt.Fprintf(w, "  Errors:          %d\n", totalErrors)
	fmt.Fprintf(w, "  Warnings:        %d\n", totalWarnings)
}

// JSON writes the raw result array, indented with two spaces.
func JSON(w io.Writer, results []types.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// YAML writes the result array as a YAML document.
func YAML(w io.Writer, results []types.Result) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(results)
}

func visibleIssues(issues []types.Issue, quiet bool) []types.Issue {
	if !quiet {
		return issues
	}
	var shown []types.Issue
	for _, issue := range issues {
		if issue.Severity == types.SeverityError {
			shown = append(shown, issue)
		}
	}
	return shown
}

func icon(severity types.Severity) string {
	switch severity {
	case types.SeverityError:
		return errorColor.Sprint("✗")
	case types.SeverityWarning:
		return warningColor.Sprint("⚠")
	default:
		return infoColor.Sprint("ℹ")
	}
}
