package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var host string

var rootCmd = &cobra.Command{
	Use:   "courtline-cli",
	Short: "A CLI for the courtline booking and matching server",
	Long: `Query a running courtline server from the command line: list clubs and
players, run compatibility searches, and inspect court availability.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "Base URL of the courtline server")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command failed: %s\n", err)
		os.Exit(1)
	}
}
