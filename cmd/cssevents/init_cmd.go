package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssevents.yaml config file",
	Long:  `Create a .cssevents.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cssevents configuration

# Shared settings
verbose: false
max-nesting: 512         # 0 = unbounded

# Batch check settings
check:
  source: .
  include:
    - "**/*.css"
  gitignore: true
  inline: false
  strict: false
  output-format: issues  # issues | summary | events | json
  print-lines: true
  print-linter-name: true

# Event stream settings
events:
  format: text           # text | json

# SVG style application settings
apply:
  strip: false
  keep-going: false
  imports: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
