// Package main provides the entry point for the fuel price query CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/oilprice-cn/oilquery/internal/config"
	"github.com/oilprice-cn/oilquery/internal/engine"
	"github.com/oilprice-cn/oilquery/internal/store"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
	// BuildDate is set at build time.
	BuildDate = "unknown"
)

// defaultConfigFile is overridden with OILQUERY_CONFIG.
const defaultConfigFile = "oilquery.yaml"

var cfg *config.Config

func main() {
	cfg = config.DefaultConfig()

	configFile := defaultConfigFile
	if v := os.Getenv("OILQUERY_CONFIG"); v != "" {
		configFile = v
	}
	if err := cfg.LoadFromFile(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.LoadFromEnv()

	rootCmd := &cobra.Command{
		Use:   "oilquery",
		Short: "Fuel price query tool for Chinese provinces and cities",
		Long: `oilquery looks up current retail fuel prices for a Chinese province or
city from one of several upstream sources and normalizes the result into a
single schema.

Features:
  - Multiple data sources (juhe.cn API, youjia.10260.com)
  - Append-only query history (most recent 100 queries)
  - Price adjustment calendar
  - Sichuan DRC fuel price notices`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.JuheAPIKey, "juhe-api-key", cfg.JuheAPIKey, "API key for the juhe.cn source")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json, console)")
	rootCmd.PersistentFlags().StringVar(&cfg.HistoryPath, "history-path", cfg.HistoryPath, "Path of the query history file")
	rootCmd.PersistentFlags().StringVar(&cfg.CalendarPath, "calendar-path", cfg.CalendarPath, "Path of the adjustment calendar file")

	// Add subcommands
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(noticesCmd())
	rootCmd.AddCommand(regionsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger() zerolog.Logger {
	var logger zerolog.Logger

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			With().
			Timestamp().
			Logger()
	}

	return logger
}

func newEngine(logger zerolog.Logger) *engine.Engine {
	history := store.NewHistory(cfg.HistoryPath, logger)
	calendar := store.NewCalendar(cfg.CalendarPath, logger)
	return engine.New(cfg.JuheAPIKey, history, calendar, logger)
}
