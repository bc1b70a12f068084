// Package main is the entry point for makelint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "makelint",
	Short: "A fast, extensible linter for Makefiles",
	Long: `makelint parses GNU Make syntax into a structured representation,
evaluates diagnostic rules against it, and can rewrite the source to
resolve the issues it finds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("makelint %s\ncommit: %s\nbuilt:  %s\n", version, commit, date)
	},
}

func main() {
	rootCmd.Version = version + " (" + commit + ") " + date

	rootCmd.PersistentFlags().String("config", "", "path to config file (default: search for .makelint.toml)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0 = one per CPU)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print files as they are processed")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("makelint:", err)
		os.Exit(2)
	}
}
