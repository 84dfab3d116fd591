// Package main provides the entry point for the f1scrape CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for f1scrape.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "f1scrape",
		Short: "Formula 1 reference data scraper",
		Long: `f1scrape builds clean CSV datasets from public Formula 1 reference pages.

It scrapes two datasets:
  circuits  every circuit that has hosted a Formula One Grand Prix
  results   the race winners of every season since 1950

Server-rendered pages are fetched over plain HTTP; pages that build their
tables with JavaScript are loaded in a headless Chrome browser. Each run
writes a CSV file, prints a summary, and archives a run digest that can be
inspected later with 'f1scrape runs'.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .f1scrape in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewCircuitsCmd())
	cmd.AddCommand(NewResultsCmd())
	cmd.AddCommand(NewAllCmd())
	cmd.AddCommand(NewRunsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
