package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tabula",
	Run: func(cmd *cobra.Command, args []string) {
		version := strings.TrimSpace(tabula.Version)
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout(), version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "tabula version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
