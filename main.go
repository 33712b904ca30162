package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/chainbot/internal/bot"
	"github.com/robalobadob/chainbot/internal/config"
	"github.com/robalobadob/chainbot/internal/discord"
	"github.com/robalobadob/chainbot/internal/game"
	"github.com/robalobadob/chainbot/internal/httpserver"
	"github.com/robalobadob/chainbot/internal/profanity"
	"github.com/robalobadob/chainbot/internal/store"
	"github.com/robalobadob/chainbot/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict, err := words.Load([]words.Source{
		{Path: cfg.PrimaryWords},
		{Path: cfg.SecondaryWords, Optional: true},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	filter, err := profanity.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load block-list")
	}
	log.Info().Int("words", dict.Len()).Int("blocked", filter.Len()).Msg("word lists loaded")

	st, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open store")
	}
	defer closeStore()

	d, err := bot.New(ctx, st, game.NewEngine(dict, filter), cfg.NoticeTTL)
	if err != nil {
		var perr *store.ParseError
		if errors.As(err, &perr) {
			log.Fatal().Err(perr.Err).Str("source", perr.Source).
				Msg("game document is corrupt; fix or remove it and restart")
		}
		log.Fatal().Err(err).Msg("failed to load game document")
	}

	srv := httpserver.New(d, dict, filter)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting keep-alive server")
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("keep-alive server exited")
		}
	}()

	// Give the keep-alive endpoint a head start before logging in.
	select {
	case <-time.After(cfg.StartupDelay):
	case <-ctx.Done():
		return
	}

	b, err := discord.New(cfg.DiscordToken, cfg.GuildID, d)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord session")
	}
	if err := b.Run(ctx); err != nil {
		log.Error().Err(err).Msg("discord session exited")
	}
	log.Info().Msg("shutdown")
}

// openStore builds the configured backend and its cleanup func.
func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		s, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.BackendMemory:
		log.Warn().Msg("memory store: bindings and scores are lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	default:
		return store.NewFileStore(cfg.ConfigFile), func() {}, nil
	}
}
