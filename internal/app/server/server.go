package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"points-redemption-engine/internal/api"
	"points-redemption-engine/internal/config"
	"points-redemption-engine/internal/engine"
	"points-redemption-engine/internal/listener"
	"points-redemption-engine/internal/provider"
	"points-redemption-engine/internal/storage"
)

type namedSource interface {
	engine.OfferSource
	Name() string
}

func Run(cfg config.Config) {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Offer provider: live pricing when credentials exist, otherwise the
	// deterministic sample data. Missing credentials are a supported mode,
	// not an error.
	var src namedSource
	if cfg.AmadeusConfigured() {
		src = provider.NewAmadeus(cfg.Amadeus.BaseURL, cfg.Amadeus.APIKey, cfg.Amadeus.APISecret)
	} else {
		src = provider.NewMock()
		log.Info().Msg("no amadeus credentials; serving sample offer data")
	}

	// Rate-table storage is optional; without it the engine runs on the
	// built-in charts.
	var store *storage.Store
	if cfg.PostgresConfigured() {
		var err error
		store, err = storage.New(rootCtx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("init storage")
		}
		defer store.Close()
	} else {
		log.Info().Msg("no postgres configured; using built-in rate tables")
	}

	// Engine
	policy := engine.ParseGiftCardPolicy(cfg.Engine.GiftCardPolicy)
	opt := engine.NewOptimizer(src, policy)
	if store != nil {
		if err := opt.BuildSnapshot(rootCtx, store); err != nil {
			log.Fatal().Err(err).Msg("initial snapshot build")
		}
	}
	log.Info().Str("gift_card_policy", string(policy)).Str("provider", src.Name()).Msg("engine ready")

	// HTTP
	h := api.NewRedemptionHandler(opt, src.Name())
	r := api.Router(h)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Listener (LISTEN/NOTIFY) only makes sense with a database behind it.
	if store != nil {
		go listener.ListenAndRefresh(rootCtx, store, opt, cfg.Listener.Channel, cfg.Backoff())
	}

	// Server goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}()

	// Wait for signal
	waitForSignal()
	log.Info().Msg("shutdown...")

	// Graceful shutdown
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	cancel() // stop background goroutines
	_ = srv.Shutdown(shCtx)
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
