// Package main provides the entry point for the assist CLI tool.
package main

import "github.com/streetlab/assist/cmd/assist/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
