// Package main provides the entry point for the ClaudeHydra server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/agent"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/config"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/logging"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/provider"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/server"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/state"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

var (
	port       = flag.Int("port", 0, "Server port (overrides config)")
	configPath = flag.String("config", "", "Path to config file")
	version    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s %s\n", server.AppName, server.Version)
		os.Exit(0)
	}

	// Optional .env; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *port > 0 {
		cfg.Port = *port
	}

	logging.Init(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})

	store := state.New(types.Settings{
		Theme:        cfg.Theme,
		Language:     cfg.Language,
		DefaultModel: cfg.DefaultModel,
		AutoStart:    cfg.AutoStart,
	}, cfg.APIKeys, agent.Roster())

	client := provider.NewClient(cfg.AnthropicBaseURL)

	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Port

	srv := server.New(serverConfig, store, client)

	go func() {
		logging.Info().
			Int("port", cfg.Port).
			Str("version", server.Version).
			Msg("Server listening")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logging.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown error")
	}

	logging.Info().Msg("Server stopped")
}
