package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/makelint/internal/runner"
)

var checkCmd = &cobra.Command{
	Use:   "check [files or directories...]",
	Short: "Lint Makefiles and report diagnostics",
	Long: `Lint the given Makefiles. Directory arguments are walked for
Makefile, makefile, GNUmakefile, and *.mk files. With no arguments,
reads from stdin.

Exit status is 1 when any error-severity diagnostic is found, 2 on
operational failure.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "text", "output format (text|json|github)")
	checkCmd.Flags().Bool("fix", false, "apply safe fixes before reporting")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := runnerOptions(cmd, args)
	if err != nil {
		return err
	}
	opts.Fix, _ = cmd.Flags().GetBool("fix")
	os.Exit(runner.Run(opts))
	return nil
}

// runnerOptions gathers the flags shared by check and fix.
func runnerOptions(cmd *cobra.Command, args []string) (*runner.Options, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return nil, err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, err
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	format := "text"
	if cmd.Flags().Lookup("format") != nil {
		format, _ = cmd.Flags().GetString("format")
	}

	return &runner.Options{
		Paths:      args,
		Format:     format,
		ConfigPath: configPath,
		Jobs:       jobs,
		Quiet:      quiet,
		Verbose:    verbose,
	}, nil
}
