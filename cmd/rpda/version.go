package main

import (
	"fmt"

	"github.com/aretw0/rpda"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rpda",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rpda version %s\n", rpda.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
