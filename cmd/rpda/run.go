package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/rpda/internal/cli"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <machine> <input> <f|b>",
	Short: "Run a whole input string",
	Long: `Validates the machine, then runs the input string in one direction.

A backward run undoes a forward one: the input is reversed, the run starts in
the accept state and is accepted when it returns to the initial state.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := domain.ParseDirection(args[2])
		if err != nil {
			return err
		}

		m, err := cli.LoadMachine(machineOptions(cmd, args[0]))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if _, err := cli.RunBatch(ctx, cmd.OutOrStdout(), m, args[1], dir); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
