// Package main is the entry point for the Agenda Beleza server: client
// accounts, password reset by email, the service catalog and online
// booking for the salon.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/server"
	"github.com/agendabeleza/backend/internal/utils"
)

// Build metadata, set through linker flags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func init() {
	// A missing .env is fine; configuration may come from the environment.
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found or couldn't be loaded")
	}
}

func main() {
	var (
		configPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Agenda Beleza\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Bootstrap logger until the configured one is in place
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.App.Version = version
	}

	if err := utils.InitLogger(cfg); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = utils.CloseLogger() }()

	log.Info().
		Str("version", cfg.App.Version).
		Str("commit", commit).
		Str("environment", cfg.App.Environment).
		Msg("Starting Agenda Beleza")

	utils.InitValidator()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	if err := srv.Start(); err != nil {
		log.Error().Err(err).Msg("Server error")
		_ = utils.CloseLogger()
		os.Exit(1)
	}

	log.Info().Msg("Server exited")
}
