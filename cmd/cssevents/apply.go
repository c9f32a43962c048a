package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cssevents/internal/cssparse"
	"github.com/yacobolo/cssevents/internal/stylesheet"
)

var applyCmd = &cobra.Command{
	Use:   "apply <in.svg>",
	Short: "Apply an SVG's stylesheets as presentation attributes",
	Long: `Resolve the <style> elements and style attributes of an SVG document and
write the computed declarations onto each element as attributes, e.g.
<path class="a"/> with .a{fill:#fff} becomes <path class="a" fill="#fff"/>.
@import targets are resolved relative to the input file.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApply(cmd, args[0])
	},
}

func init() {
	f := applyCmd.Flags()
	f.StringP("output", "o", "-", `Output file ("-" for stdout)`)
	f.Bool("strip", false, "Remove <style> elements and style attributes after applying")
	f.Bool("keep-going", false, "Skip malformed style attributes instead of failing")
	f.Bool("imports", true, "Follow @import targets relative to the input file")
}

func runApply(cmd *cobra.Command, input string) error {
	settings := buildApplySettings()

	log, err := commandLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// #nosec G304 - the input path is given on the command line
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	opts := []stylesheet.ApplyOption{
		stylesheet.WithLogger(log),
		stylesheet.WithParser(cssparse.New(cssparse.WithMaxNesting(settings.MaxNesting))),
		stylesheet.WithStrip(settings.Strip),
		stylesheet.WithKeepGoing(settings.KeepGoing),
	}
	if settings.FollowImports {
		opts = append(opts, stylesheet.WithImportResolver(stylesheet.DirResolver(filepath.Dir(input))))
	}

	var out bytes.Buffer
	stats, err := stylesheet.NewApplier(opts...).ApplySVG(in, &out)
	if err != nil {
		return fmt.Errorf("apply %s: %w", input, err)
	}
	out.WriteByte('\n')
	log.Debug("apply finished",
		zap.String("input", input),
		zap.Int("rules", stats.Rules),
		zap.Int("skipped_selectors", stats.SkippedSelectors),
		zap.Int("styled_nodes", stats.StyledNodes))

	if settings.Output == "-" {
		_, err = cmd.OutOrStdout().Write(out.Bytes())
		return err
	}
	if err := os.WriteFile(settings.Output, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !getBoolWithFallback("quiet", "quiet", false) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Styled %d elements from %d rules into %s\n",
			stats.StyledNodes, stats.Rules, settings.Output)
	}
	return nil
}
