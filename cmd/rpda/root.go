package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/rpda/internal/cli"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rpda <machine> [input direction]",
	Short: "rpda simulates reversible pushdown automata",
	Long: `rpda loads a machine (a .csv transition table or a .yaml definition), reports
whether it is reversible, and runs it.

With only a machine, it steps interactively (see 'rpda step').
With an input string and a direction (f or b), it runs the whole string (see 'rpda run').`,
	Args:          cobra.MatchAll(cobra.RangeArgs(1, 3), notTwoArgs),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return stepCmd.RunE(cmd, args)
		}
		return runCmd.RunE(cmd, args)
	},
}

func notTwoArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		return fmt.Errorf("input string specified but no direction")
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Validation failures were already reported on stdout.
		if !errors.Is(err, domain.ErrNotReversible) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "Log to stderr at this level (debug, info, warn, error)")
	flags.String("initial", "", "Override the initial state")
	flags.StringSlice("final", nil, "Override the final (accepting) states")
	flags.StringSlice("reject", nil, "Override the reject states")
	flags.Bool("lenient-reject", false, "Allow reject states that never appear in the transitions")
	flags.Int("step-limit", 0, "Stop a run after this many steps (0 = unbounded)")
}

// machineOptions collects the shared flags for the machine at path.
func machineOptions(cmd *cobra.Command, path string) cli.MachineOptions {
	flags := cmd.Flags()
	opts := cli.MachineOptions{Path: path}
	opts.LogLevel, _ = flags.GetString("log-level")
	opts.Initial, _ = flags.GetString("initial")
	opts.Final, _ = flags.GetStringSlice("final")
	opts.Reject, _ = flags.GetStringSlice("reject")

	if flags.Changed("lenient-reject") {
		lenient, _ := flags.GetBool("lenient-reject")
		opts.LenientReject = &lenient
	}
	if flags.Changed("step-limit") {
		limit, _ := flags.GetInt("step-limit")
		opts.StepLimit = &limit
	}
	return opts
}
