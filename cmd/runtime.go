package cmd

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/kivosy/factory/internal/appstore"
	"github.com/kivosy/factory/internal/config"
	"github.com/kivosy/factory/internal/factory"
	"github.com/kivosy/factory/internal/kvstore"
	"github.com/kivosy/factory/internal/log"
	"github.com/kivosy/factory/internal/provider"
	"github.com/kivosy/factory/internal/quota"
)

// runtime wires the full application: config, logging, storage, quota
// tracking, provider adapters, and the generation pipeline. Commands build
// one, use it, and Close it.
type runtime struct {
	cfg     *config.Config
	logger  log.Logger
	kv      *kvstore.SQLite
	store   *appstore.Store
	tracker *quota.Tracker
	factory *factory.Factory
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger := log.New(log.Config{Level: cfg.SlogLevel(), JSON: cfg.LogJSON})

	kv, err := kvstore.OpenSQLite(cfg.DatabasePath(), logger.With("component", "kvstore"))
	if err != nil {
		return nil, fmt.Errorf("opening app database: %w", err)
	}

	store := appstore.New(kv, logger.With("component", "appstore"))
	tracker := quota.New(kv, logger.With("component", "quota"),
		quota.WithMaxPerDay(cfg.MaxPerDay))

	// One shared limiter paces all provider traffic: the orchestrator tries
	// adapters sequentially, so a fallback attempt counts against the same
	// budget as the attempt that failed.
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute)/60, 1)

	adapters := []provider.Adapter{
		provider.NewGemini(cfg.GeminiAPIKey,
			provider.WithGeminiModel(cfg.GeminiModel),
			provider.WithGeminiLimiter(limiter)),
		provider.NewGroq(cfg.GroqAPIKey,
			provider.WithGroqModel(cfg.GroqModel),
			provider.WithGroqLimiter(limiter)),
	}

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		kv:      kv,
		store:   store,
		tracker: tracker,
		factory: factory.New(store, tracker, adapters, logger.With("component", "factory")),
	}, nil
}

func (r *runtime) Close() error {
	return r.kv.Close()
}
