package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tabula/internal/cli"
	"github.com/aretw0/tabula/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "Tabula turns factored MDP domains into tabulated ones",
	Long: `Tabula enumerates every state reachable from the seeds of a factored domain,
assigns each one a stable integer id and exposes the resulting tabulated domain
as a table, a graph, or an HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every discovered state")
	rootCmd.PersistentFlags().String("hasher", "", "State equivalence: exact, identifier-independent or mask (default: from the domain file)")
	rootCmd.PersistentFlags().StringSlice("mask", nil, "class.attribute entries for the mask hasher")

	rootCmd.PersistentFlags().String("store", "file", "Table store: file, yaml, redis or memory")
	rootCmd.PersistentFlags().String("store-dir", "", "Directory for file stores (default: .tabula/tables)")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database for the redis store")
	rootCmd.PersistentFlags().String("encryption-key", os.Getenv("TABULA_TABLE_KEY"), "Hex AES-256 key sealing stored tables (env TABULA_TABLE_KEY)")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		raw = "debug"
	}
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

func engineOptions(cmd *cobra.Command, path string) cli.Options {
	hasher, _ := cmd.Flags().GetString("hasher")
	mask, _ := cmd.Flags().GetStringSlice("mask")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{
		DomainPath: path,
		Hasher:     hasher,
		Mask:       mask,
		Debug:      debug,
	}
}

func openStore(cmd *cobra.Command, logger *slog.Logger) (*cli.Store, error) {
	kind, _ := cmd.Flags().GetString("store")
	dir, _ := cmd.Flags().GetString("store-dir")
	addr, _ := cmd.Flags().GetString("redis-addr")
	db, _ := cmd.Flags().GetInt("redis-db")
	key, _ := cmd.Flags().GetString("encryption-key")
	return cli.OpenStore(cli.StoreOptions{
		Kind:      kind,
		Dir:       dir,
		RedisAddr: addr,
		RedisDB:   db,
		Key:       key,
	}, logger)
}
