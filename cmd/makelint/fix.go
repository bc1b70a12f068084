package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/makelint/internal/runner"
)

var fixCmd = &cobra.Command{
	Use:   "fix [files or directories...]",
	Short: "Apply safe fixes and report what remains",
	Long: `Apply all safe fixes to the given Makefiles, re-running the lint
pipeline until it converges, then report the diagnostics that remain.
Suggested (non-safe) fixes are printed but never applied. With no
arguments, reads stdin and writes the corrected text to stdout.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().String("format", "text", "output format (text|json|github)")
	fixCmd.Flags().Bool("diff", false, "print a unified diff instead of writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	opts, err := runnerOptions(cmd, args)
	if err != nil {
		return err
	}
	opts.Fix = true
	opts.Diff, _ = cmd.Flags().GetBool("diff")
	os.Exit(runner.Run(opts))
	return nil
}
