package main

import (
	"fmt"

	"github.com/aretw0/tabula/internal/cli"
	"github.com/aretw0/tabula/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <domain.yaml>",
	Short: "Export the tabulated transition graph",
	Long:  `Enumerates the domain and outputs a Mermaid diagram (graph TD) with one node per state id and one edge per outcome.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		engine, err := cli.CreateEngine(engineOptions(cmd, args[0]), logger, nil)
		if err != nil {
			return err
		}

		m, err := engine.Model()
		if err != nil {
			return err
		}
		seeds, err := engine.SeedIDs()
		if err != nil {
			return err
		}

		var labels []string
		if withLabels, _ := cmd.Flags().GetBool("labels"); withLabels {
			for _, s := range engine.States() {
				labels = append(labels, s.String())
			}
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m, labels, &graph.GraphOverlay{Seeds: seeds}))
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("labels", false, "Label nodes with their source-domain state")
}
