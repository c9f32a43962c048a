package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cssevents/internal/cssevents"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check CSS files for syntax errors",
	Long: `Parse every CSS file matched by the include globs and report syntax
errors, empty rules and repeated properties in golangci-lint format.
Exits 1 on any error, or on any issue with --strict.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCheck(cmd)
	},
}

func init() {
	f := checkCmd.Flags()
	f.String("source", ".", "Directory the include globs are relative to")
	f.StringSlice("include", []string{"**/*.css"}, "Glob patterns for CSS files to check")
	f.Bool("gitignore", true, "Skip files ignored by <source>/.gitignore")
	f.Bool("inline", false, "Treat every file as a declaration block")
	f.Bool("strict", false, "Exit 1 on any issue, warnings included (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|events|json")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (cssparse) suffix on issues")
}

func runCheck(cmd *cobra.Command) error {
	config := buildCheckConfig()

	log, err := commandLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	result, err := cssevents.Process(config, log)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	log.Debug("check finished",
		zap.Int("files", result.FilesScanned),
		zap.Int("errors", result.ErrorCount),
		zap.Int("warnings", result.WarningCount))

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "check.output-format", "")
	format := cssevents.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		if err := cssevents.WriteOutput(cmd.OutOrStdout(), result, format, config); err != nil {
			return fmt.Errorf("writing %s output: %w", format, err)
		}
	}

	// warnings only fail the run with --strict
	if result.Failed(config) {
		return errCheckFailed
	}
	return nil
}
