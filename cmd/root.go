package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/killallgit/cardsheet-api/pkg/config"
	"github.com/killallgit/cardsheet-api/pkg/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cardsheet",
	Short: "Card search tables for spreadsheets",
	Long: `Cardsheet API - card search results shaped for spreadsheet ranges

Runs a card search against Scryfall, follows result pages up to the
requested count and returns one row per card with the requested fields
plus the USD price converted to the configured currency.

Features:
  • Field and sort-order aliases (type, o, mana, price, ...)
  • Multi-page retrieval, capped at 700 cards
  • Legality summaries and IMAGE formulas for card art
  • JSON table endpoint and xlsx export`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig initializes configuration for commands that need it and applies
// the logging flags on top. version and help never call it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("error initializing config: %w", err)
	}

	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		config.Set("logging.level", f.Value.String())
	}
	if jsonLogs, err := cmd.Flags().GetBool("json-logs"); err == nil && cmd.Flags().Changed("json-logs") {
		if jsonLogs {
			config.Set("logging.format", "json")
		} else {
			config.Set("logging.format", "console")
		}
	}

	return config.GetConfig()
}

// newLogger builds the process logger from config
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}
