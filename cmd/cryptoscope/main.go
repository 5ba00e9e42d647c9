package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	lookupMode string
)

var rootCmd = &cobra.Command{
	Use:   "cryptoscope",
	Short: "Crypto sentiment and market analysis in your terminal",
	Long: `CryptoScope looks up a coin, gathers tweets and news about it and shows
an AI-generated sentiment and price-target analysis on a tabbed dashboard.`,
	RunE: runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Starts the terminal dashboard (default)",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analysis HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to the config file")
	rootCmd.PersistentFlags().StringVarP(&lookupMode, "mode", "m", "", "lookup mode: fixture, catalog, remote or live")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
