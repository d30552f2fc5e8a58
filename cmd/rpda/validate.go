package main

import (
	"github.com/aretw0/rpda/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine>",
	Short: "Check the machine for reversibility",
	Long: `Checks, in order, that the designated states appear in the transitions, that no
state has two transitions with the same key, and that every forward transition
has its backward mirror. Exits non-zero on the first violation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := cli.LoadMachine(machineOptions(cmd, args[0]))
		if err != nil {
			return err
		}
		return cli.ReportValidation(cmd.OutOrStdout(), m)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
