package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"gorm.io/gorm/logger"

	"github.com/dom/league-roulette/internal/config"
	"github.com/dom/league-roulette/internal/ddragon"
	"github.com/dom/league-roulette/internal/redis"
	"github.com/dom/league-roulette/internal/repository"
	"github.com/dom/league-roulette/internal/repository/memory"
	"github.com/dom/league-roulette/internal/repository/postgres"
	"github.com/dom/league-roulette/internal/repository/sqlite"
	"github.com/dom/league-roulette/internal/roulette"
	"github.com/dom/league-roulette/internal/service"
)

// app is everything a command needs, built from the environment.
type app struct {
	cfg      *config.Config
	repos    *repository.Repositories
	cache    *redis.ResponseCache
	source   *ddragon.Client
	rules    roulette.Rules
	services *service.Services

	closers []func() error
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{cfg: cfg}

	if err := a.openStore(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openCache(); err != nil {
		a.Close()
		return nil, err
	}

	a.rules, err = roulette.LoadRules(cfg.RulesFile)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := ddragon.Options{
		BaseURL:     cfg.DataDragonBaseURL,
		Locale:      cfg.DataDragonLocale,
		Version:     cfg.DataDragonVersion,
		HTTPClient:  &http.Client{Timeout: cfg.FetchTimeout},
		VersionsTTL: cfg.CacheTTL,
	}
	if a.cache != nil {
		opts.Cache = a.cache
	}
	a.source = ddragon.NewClient(opts)

	a.services = service.NewServices(a.repos, cfg, a.source, a.rules)
	return a, nil
}

func (a *app) openStore() error {
	switch a.cfg.StoreDriver {
	case config.StoreMemory:
		a.repos = memory.NewRepositories()

	case config.StoreSQLite:
		db, err := sqlite.Open(a.cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite store: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.repos = sqlite.NewRepositories(db)

	case config.StorePostgres:
		level := logger.Warn
		if a.cfg.IsDevelopment() {
			level = logger.Info
		}
		db, err := postgres.NewConnection(a.cfg.DatabaseURL, level)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		a.closers = append(a.closers, sqlDB.Close)
		a.repos = postgres.NewRepositories(db)
	}
	log.Printf("Catalog store: %s", a.cfg.StoreDriver)
	return nil
}

func (a *app) openCache() error {
	if a.cfg.RedisURL == "" {
		return nil
	}
	client, err := redis.NewClient(a.cfg.RedisURL, &redis.Options{PoolSize: a.cfg.RedisPoolSize})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	a.closers = append(a.closers, client.Close)

	if err := client.Ping(context.Background()).Err(); err != nil {
		// The cache is optional; run without it rather than fail.
		log.Printf("ERROR [app.openCache]: redis unavailable, caching disabled: %v", err)
		return nil
	}
	a.cache = redis.NewResponseCache(client, redis.DefaultKeyPrefix)
	log.Printf("Data Dragon response cache enabled")
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("ERROR [app.Close]: %v", err)
		}
	}
	a.closers = nil
}
