// Package main provides the entry point for the legal-digest CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/legal-digest/internal/config"
)

var (
	configPath string
	appConfig  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "legal_digest",
	Short: "Legal document summarization and risk analysis",
	Long: `legal_digest summarizes legal documents into bullet points, flags key clauses and
risky language, and answers questions about the text. It runs as a CLI or as a REST API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML, JSON or TOML config file (env vars with prefix "+config.EnvPrefix+"_ override it)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
