package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/internal/cli"
	"github.com/aretw0/tabula/internal/presentation/tui"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/tabulated"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// enumeration is the machine-readable output of the enumerate command.
type enumeration struct {
	Seeds  []int            `json:"seeds" yaml:"seeds"`
	States []*domain.State  `json:"states" yaml:"states"`
	Model  *tabulated.Model `json:"model" yaml:"model"`
}

var enumerateCmd = &cobra.Command{
	Use:   "enumerate <domain.yaml>",
	Short: "Enumerate the reachable states of a domain",
	Long: `Compiles the domain file, enumerates every state reachable from its seeds and
prints the id table. With --save the table is persisted to the selected store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		opts := engineOptions(cmd, args[0])
		name, _ := cmd.Flags().GetString("save")

		var store *cli.Store
		if name != "" {
			if store, err = openStore(cmd, logger); err != nil {
				return err
			}
			defer store.Close()
			opts.Locker = store.Locker
		}

		start := time.Now()
		engine, err := cli.CreateEngine(opts, logger, nil)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		if store != nil {
			if err := engine.Save(cmd.Context(), store, name); err != nil {
				return err
			}
			logger.Info("table saved", "table", name, "states", engine.NumStates())
		}

		format, _ := cmd.Flags().GetString("format")
		if err := printEnumeration(cmd, engine, format); err != nil {
			return err
		}
		if format == "table" {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.Summary(engine.InputDomain().Name, engine.NumStates(), len(engine.Domain().Actions()), elapsed))
		}
		return nil
	},
}

func printEnumeration(cmd *cobra.Command, engine *tabula.Engine, format string) error {
	m, err := engine.Model()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch format {
	case "json", "yaml":
		seeds, err := engine.SeedIDs()
		if err != nil {
			return err
		}
		v := enumeration{Seeds: seeds, States: engine.States(), Model: m}
		if format == "yaml" {
			enc := yaml.NewEncoder(out)
			defer enc.Close()
			return enc.Encode(v)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case "table":
		markdown := tui.StateTable(engine.States(), m)
		if !tui.IsTerminal(os.Stdout) {
			_, err := fmt.Fprint(out, markdown)
			return err
		}
		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		rendered, err := render(markdown)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err

	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

func init() {
	rootCmd.AddCommand(enumerateCmd)
	enumerateCmd.Flags().StringP("format", "f", "table", "Output format: table, json or yaml")
	enumerateCmd.Flags().String("save", "", "Persist the table under this name")
}
