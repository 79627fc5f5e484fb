package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"medidesk/internal/config"
)

// @title MediDesk Staff Portal API
// @version 1.0
// @description Role-based portal for doctors, lab staff, pharmacy staff and administrators.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	rootCmd := &cobra.Command{
		Use:           "portal",
		Short:         "Clinic staff portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(provisionCmd())

	if err := rootCmd.Execute(); err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Error().Err(err).Msg("portal")
		os.Exit(1)
	}
}

// newLogger builds the root logger: console output in development or when
// asked for, JSON otherwise. An unknown level falls back to info.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout)
	if cfg.LogFormat == "console" || (cfg.LogFormat == "" && cfg.IsDev()) {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
