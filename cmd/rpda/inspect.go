package main

import (
	"fmt"

	"github.com/aretw0/rpda/internal/cli"
	"github.com/aretw0/rpda/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <machine>",
	Short: "Describe the machine's states and transitions",
	Long:  `Prints a markdown report of the machine, rendered for the terminal when stdout is one.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := cli.LoadMachine(machineOptions(cmd, args[0]))
		if err != nil {
			return err
		}

		report := tui.Report(m.Name, m.Definition(), m.Validate())
		out := cmd.OutOrStdout()
		raw, _ := cmd.Flags().GetBool("raw")
		if raw || !tui.IsTerminal(out) {
			fmt.Fprint(out, report)
			return nil
		}

		rendered, err := tui.NewRenderer()(report)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "Print markdown even on a terminal")
}
