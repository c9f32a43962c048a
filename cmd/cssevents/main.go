// Package main provides the cssevents CLI.
//
// Usage:
//
//	cssevents events styles.css          # print the event stream of one file
//	echo 'fill:red' | cssevents events --inline
//	cssevents check --source web/styles  # report syntax errors (golangci-lint style)
//	cssevents apply icon.svg -o out.svg --strip
package main

import (
	"errors"
	"fmt"
	"os"
)

// errCheckFailed makes the process exit 1 once issues have been reported.
var errCheckFailed = errors.New("check failed")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
