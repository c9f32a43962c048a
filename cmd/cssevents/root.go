package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/cssevents/internal/cssparse"
)

var rootCmd = &cobra.Command{
	Use:   "cssevents",
	Short: "Event-driven CSS fragment parser",
	Long: `Parse stylesheets and inline style attributes into a flat stream of
events (imports, selectors, rule boundaries, properties and values).
Check CSS files for syntax errors, or apply SVG stylesheets as
presentation attributes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().Int("max-nesting", cssparse.DefaultMaxNesting, "Maximum block nesting depth (0=unbounded)")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")

	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
