package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/rpda/internal/cli"
	"github.com/spf13/cobra"
)

// stepCmd represents the step command
var stepCmd = &cobra.Command{
	Use:   "step <machine>",
	Short: "Step a machine interactively",
	Long: `Validates the machine, then reads one step per line from stdin:

  <c>f, <c>b   step forward or backward on symbol c
  f, b         epsilon step in that direction
  (empty)      epsilon step forward
  exit         quit

Stepping stops once a final or reject state is reached.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := cli.LoadMachine(machineOptions(cmd, args[0]))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		_, err = cli.RunInteractive(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), m)
		return err
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
}
