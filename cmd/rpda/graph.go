package main

import (
	"fmt"

	"github.com/aretw0/rpda/internal/cli"
	"github.com/aretw0/rpda/internal/presentation/graph"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Export the machine as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart of the states; forward transitions are solid, backward ones dotted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := cli.LoadMachine(machineOptions(cmd, args[0]))
		if err != nil {
			return err
		}

		var dirs []domain.Direction
		if tag, _ := cmd.Flags().GetString("direction"); tag != "" {
			dir, err := domain.ParseDirection(tag)
			if err != nil {
				return err
			}
			dirs = append(dirs, dir)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m.Definition(), nil, dirs...))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("direction", "d", "", "Only draw one half (f or b)")
}
