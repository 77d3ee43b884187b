package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/internal/cli"
	"github.com/aretw0/tabula/pkg/tabulated"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <domain.yaml> <id>",
	Short: "Show a tabulated state and its transitions",
	Long: `Resolves a state id back to its source-domain state and lists every applicable
action with its outcome distribution. With --table the ids come from a stored
table instead of a fresh enumeration.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid state id %q", args[1])
		}

		var engine *tabula.Engine
		if name, _ := cmd.Flags().GetString("table"); name != "" {
			store, err := openStore(cmd, logger)
			if err != nil {
				return err
			}
			defer store.Close()
			engine, err = cli.RestoreEngine(cmd.Context(), engineOptions(cmd, args[0]), store, name, logger)
			if err != nil {
				return err
			}
		} else {
			engine, err = cli.CreateEngine(engineOptions(cmd, args[0]), logger, nil)
			if err != nil {
				return err
			}
		}

		src, err := engine.Wrapper().SourceDomainState(tabulated.StateFor(id))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "state %d: %s\n", id, src)

		ts := tabulated.StateFor(id)
		for _, a := range engine.Domain().Actions() {
			ok, err := a.Applicable(ts, nil)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			tps, err := a.Transitions(ts, nil)
			if err != nil {
				return err
			}
			parts := make([]string, 0, len(tps))
			for _, tp := range tps {
				next, err := engine.Wrapper().StateID(tp.State)
				if err != nil {
					return err
				}
				parts = append(parts, fmt.Sprintf("%d (p=%s)", next, strconv.FormatFloat(tp.P, 'g', -1, 64)))
			}
			fmt.Fprintf(out, "  %s -> %s\n", a.Name(), strings.Join(parts, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("table", "", "Resolve ids against a stored table")
}
