package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssevents/internal/cssparse"
)

var eventsCmd = &cobra.Command{
	Use:   "events [file|-]",
	Short: "Print the event stream of a CSS fragment",
	Long: `Parse one stylesheet, or one declaration block with --inline, and print
every event in order. Reads stdin when no file or "-" is given. On a
syntax error the events seen so far are printed before the error.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runEvents,
}

func init() {
	f := eventsCmd.Flags()
	f.Bool("inline", false, "Parse the input as a declaration block (style attribute)")
	f.String("format", "text", "Output format: text|json")
}

func runEvents(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	parser := cssparse.New(cssparse.WithMaxNesting(
		getIntWithFallback("max-nesting", "max-nesting", cssparse.DefaultMaxNesting)))
	inline := getBoolWithFallback("inline", "events.inline", false)

	var rec cssparse.Recorder
	parseErr := parser.Parse(text, &rec, inline)

	if !getBoolWithFallback("quiet", "quiet", false) {
		format := getStringWithFallback("format", "events.format", "text")
		if err := writeEvents(cmd.OutOrStdout(), &rec, format); err != nil {
			return err
		}
	}
	return parseErr
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

func writeEvents(w io.Writer, rec *cssparse.Recorder, format string) error {
	switch format {
	case "text":
		for _, e := range rec.Events {
			fmt.Fprintln(w, e)
		}
		return nil
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rec)
	}
	return fmt.Errorf("unknown format %q (want text or json)", format)
}
