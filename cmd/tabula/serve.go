package main

import (
	"net"

	"github.com/aretw0/tabula/internal/cli"
	"github.com/aretw0/tabula/internal/metrics"
	httpAdapter "github.com/aretw0/tabula/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <domain.yaml>",
	Short: "Serve the tabulated domain over HTTP",
	Long: `Enumerates the domain and exposes the tabulated domain as a JSON API, so
harnesses that only understand integer states can query and step it.
Prometheus metrics are served on /metrics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		engine, err := cli.CreateEngine(engineOptions(cmd, args[0]), logger, metrics.NewRecorder())
		if err != nil {
			return err
		}

		handler, err := httpAdapter.NewHandler(engine.Wrapper(), httpAdapter.WithLogger(logger))
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		return cli.Serve(cmd.Context(), ln, handler, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
