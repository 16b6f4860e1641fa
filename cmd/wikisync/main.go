// Package main is the entry point for the wikisync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/um-tesoreria/wikisync/internal/app"
	"github.com/um-tesoreria/wikisync/internal/cli"
	"github.com/um-tesoreria/wikisync/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	container, err := app.New(domain.ConfigFileName)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}
