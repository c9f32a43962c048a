package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/cssevents/internal/cssevents"
	"github.com/yacobolo/cssevents/internal/cssparse"
)

const defaultConfigPath = ".cssevents.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	if err := k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(cmd.Flags(), f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSEVENTS_* prefix)
	if err := k.Load(env.Provider("CSSEVENTS_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// configSections are the command sections of the config file.
var configSections = []string{"check", "apply", "events"}

// envKey maps an environment variable to its config key:
//
//	CSSEVENTS_CHECK_SOURCE     -> check.source
//	CSSEVENTS_APPLY_KEEP_GOING -> apply.keep-going
//	CSSEVENTS_MAX_NESTING      -> max-nesting
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, "CSSEVENTS_"))
	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildCheckConfig constructs the library's Config struct from koanf state.
func buildCheckConfig() cssevents.Config {
	config := cssevents.Config{
		SourceDir:        getStringWithFallback("source", "check.source", "."),
		RespectGitignore: getBoolWithFallback("gitignore", "check.gitignore", true),
		Inline:           getBoolWithFallback("inline", "check.inline", false),
		MaxNesting:       getIntWithFallback("max-nesting", "max-nesting", cssparse.DefaultMaxNesting),
		Verbose:          getBoolWithFallback("verbose", "verbose", false),
		Strict:           getBoolWithFallback("strict", "check.strict", false),
		PrintIssuedLines: getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		UseColors:        getBoolWithFallback("color", "color", false),
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("check.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = []string{"**/*.css"}
	}

	return config
}

// applySettings are the apply command's options resolved from koanf state.
type applySettings struct {
	Output        string
	Strip         bool
	KeepGoing     bool
	FollowImports bool
	MaxNesting    int
}

func buildApplySettings() applySettings {
	return applySettings{
		Output:        getStringWithFallback("output", "apply.output", "-"),
		Strip:         getBoolWithFallback("strip", "apply.strip", false),
		KeepGoing:     getBoolWithFallback("keep-going", "apply.keep-going", false),
		FollowImports: getBoolWithFallback("imports", "apply.imports", true),
		MaxNesting:    getIntWithFallback("max-nesting", "max-nesting", cssparse.DefaultMaxNesting),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
