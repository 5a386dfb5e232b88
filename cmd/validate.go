package cmd

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/buildtrack/migration-validator/pkg/config"
	"github.com/buildtrack/migration-validator/pkg/logger"
	"github.com/buildtrack/migration-validator/pkg/report"
	"github.com/buildtrack/migration-validator/pkg/types"
	"github.com/buildtrack/migration-validator/pkg/validator"
)

var validateCmd = &cobra.Command{
	Use:     "validate-migrations [flags] <file|directory ...>",
	Aliases: []string{"validate"},
	Short:   "Validate migration files against the rule battery",
	Long: `Validate one or more .sql migration files. Directory arguments are
expanded to their immediate *.sql files (subdirectories are not
recursed into).

The process exits with code 1 when any file contains an error-severity
issue or could not be read; warnings and infos never affect the exit
code.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("fix", false, "rewrite fixable issues into the source files")
	validateCmd.Flags().BoolP("quiet", "q", false, "suppress warnings and infos in text output")
	validateCmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	validateCmd.Flags().StringP("rules", "r", "", "path to a validator config file (known tables, allowed types)")

	_ = viper.BindPFlag("fix", validateCmd.Flags().Lookup("fix"))
	_ = viper.BindPFlag("quiet", validateCmd.Flags().Lookup("quiet"))
	_ = viper.BindPFlag("format", validateCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("rules", validateCmd.Flags().Lookup("rules"))
}

func runValidate(cmd *cobra.Command, args []string) error {
	logLevel := slog.LevelWarn
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	} else if viper.GetBool("verbose") {
		logLevel = slog.LevelInfo
	}
	logger.Setup(logLevel)

	format := viper.GetString("format")
	switch format {
	case "text", "json", "yaml":
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}

	cfg, err := loadValidatorConfig()
	if err != nil {
		return err
	}
	v := validator.New(validator.WithConfig(cfg))

	files, badPaths := validator.CollectSQLFiles(args)
	slog.Debug("collected files", "count", len(files), "bad_paths", len(badPaths))

	var results []types.Result
	for _, bp := range badPaths {
		results = append(results, types.Result{FilePath: bp.Path, Error: bp.Err.Error()})
	}

	fix := viper.GetBool("fix")
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			slog.Warn("skipping unreadable file", "file", file, "error", err)
			results = append(results, types.Result{FilePath: file, Error: err.Error()})
			continue
		}

		result := v.ValidateContent(file, string(content))

		if fix && len(result.FixableIssues()) > 0 {
			fixed, _ := v.FixContent(file, string(content))
			if fixed != string(content) {
				if err := os.WriteFile(file, []byte(fixed), 0o644); err != nil {
					slog.Warn("failed to write fixes", "file", file, "error", err)
					result.Error = errors.Wrapf(err, "failed to write fixes to %s", file).Error()
				} else {
					slog.Info("applied fixes", "file", file, "count", len(result.FixableIssues()))
				}
			}
		}

		results = append(results, result)
	}

	if err := outputResults(results, format); err != nil {
		return err
	}

	if validator.HasFailures(results) {
		os.Exit(1)
	}
	return nil
}

func loadValidatorConfig() (*config.Config, error) {
	rulesPath := viper.GetString("rules")
	if rulesPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(rulesPath)
}

func outputResults(results []types.Result, format string) error {
	switch format {
	case "json":
		return report.JSON(os.Stdout, results)
	case "yaml":
		return report.YAML(os.Stdout, results)
	default:
		report.Text(os.Stdout, results, report.Options{
			Verbose: viper.GetBool("verbose"),
			Quiet:   viper.GetBool("quiet"),
		})
		return nil
	}
}
