// Package cli provides the adminctl commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ezymarket/adminctl/internal/client/config"
)

var (
	cfgFile    string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "adminctl - EzyMarket platform administration",
	Long: `adminctl is a command-line administration tool for the EzyMarket
recipe and meal planning platform.

It talks to the platform API as an admin user and manages users, groups,
recipes, ingredients, units and tags. The session survives between runs:
log in once, and subsequent commands reuse the stored tokens, refreshing
them transparently when they expire.

Quick start:
  1. adminctl login --email admin@example.com
  2. adminctl users list

Configuration:
  Config is loaded from adminctl.yaml in the current directory or
  $HOME/.adminctl/. Environment variables override config values with
  the ADMINCTL_ prefix, e.g. ADMINCTL_API_BASE_URL=https://api.example.com/api`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./adminctl.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of tables")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

func initConfig() {
	config.InitViper(cfgFile)
	_ = viper.BindPFlag("api_base_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}
