package main

import (
	"fmt"

	"github.com/aretw0/tabula/internal/cli"
	"github.com/aretw0/tabula/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <domain.yaml>",
	Short: "Validate a domain for tabular solvers",
	Long: `Enumerates the domain and checks the tabulated model for actions that are never
applicable, distributions that do not sum to one, and dangling outcomes.`,
	Args: cobra.ExactArgs(1),
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
		if err := validator.ValidateModel(m); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d states, %d actions, %d absorbing\n",
			m.NumStates, len(m.Actions), len(validator.AbsorbingStates(m)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
