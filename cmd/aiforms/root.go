package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/aiforms/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "aiforms",
	Short: "aiforms collects structured data through conversation",
	Long: `aiforms asks for the fields of a form one question at a time, in an order
derived from their priorities and dependencies, and validates every answer.

Forms are YAML files. Settings come from the environment and an optional .env
file; flags override both.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("forms-dir", "", "Directory containing form definitions (default $AIFORMS_FORMS_DIR or ./forms)")
	rootCmd.PersistentFlags().String("env-file", "", "Load settings from this file instead of ./.env")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("provider", "", "Model provider: openai or gemini (default: none)")
	rootCmd.PersistentFlags().String("model", "", "Model name passed to the provider")
}

// loadConfig resolves the settings and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var files []string
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		files = append(files, f)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("forms-dir") {
		cfg.FormsDir, _ = flags.GetString("forms-dir")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("provider") {
		cfg.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	return cfg, cfg.Validate()
}
