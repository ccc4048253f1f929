package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/teamsync/teamsync/go/internal/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("could not load .env file")
	}

	config, err := loadConfig(getEnv("TEAMSYNC_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogging(config.Log.Level)

	token := os.Getenv("TEAMSYNC_TOKEN")
	if token == "" {
		log.Fatal().Msg("TEAMSYNC_TOKEN environment variable is required")
	}

	clock := clockwork.NewRealClock()

	session, err := auth.NewSession(token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to decode auth token")
	}
	if err := session.Valid(clock.Now()); err != nil {
		log.Fatal().Err(err).Msg("auth token is no longer usable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services := setupServices(ctx, config, session, clock)

	if err := services.Refresher.RefreshTeams(ctx); err != nil {
		log.Fatal().Err(err).Msg("initial team fetch failed")
	}

	for _, team := range services.Store.Teams.Snapshot() {
		if err := services.Refresher.RefreshTeam(ctx, team.ID); err != nil {
			log.Warn().Err(err).Str("team_id", team.ID).Msg("team refresh failed, continuing")
		}
		services.Watcher.WatchTeam(ctx, services.Store.Team(team.ID))
	}

	if services.Listener != nil {
		go services.Listener.Run(ctx)
	}

	log.Info().
		Str("user_id", session.UserID).
		Int("teams", services.Store.Teams.Len()).
		Msg("teamsync engine running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	cancel()
	services.Scheduler.ClearAll()
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
