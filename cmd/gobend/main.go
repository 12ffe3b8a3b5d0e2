package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gobend",
	Short: "Build bend sequences from flat sheet drawings",
	Long: `gobend reads a flat pattern drawing (JSON or YAML), finds the bend lines
and turns a selection of them into a bend sequence with segment lengths,
predicted bend deductions and the resulting blank length.`,
	Version: version.GetFullVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the configuration file")
}

// loadConfig reads the configuration and builds the logger. Log output goes
// to stderr so it never mixes with command output.
func loadConfig() (*config.Config, *slog.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg, cfg.NewLogger(os.Stderr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
