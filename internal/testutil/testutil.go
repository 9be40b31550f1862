package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dom/league-roulette/internal/api"
	"github.com/dom/league-roulette/internal/config"
	"github.com/dom/league-roulette/internal/repository"
	"github.com/dom/league-roulette/internal/repository/memory"
	repoPostgres "github.com/dom/league-roulette/internal/repository/postgres"
	"github.com/dom/league-roulette/internal/roulette"
	"github.com/dom/league-roulette/internal/service"
	"github.com/dom/league-roulette/internal/websocket"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a migrated
// connection.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_league_roulette"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(repoPostgres.Models...); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"keystones",
		"items",
		"champions",
		"catalog_snapshots",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

const TestAdminSecret = "test-admin-secret-for-testing-only"

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:              "0", // Random port
		Environment:       "test",
		StoreDriver:       config.StoreMemory,
		AdminJWTSecret:    TestAdminSecret,
		DataDragonVersion: FakeVersion,
		DataDragonLocale:  "en_US",
		FetchTimeout:      5 * time.Second,
		TickInterval:      100 * time.Millisecond,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server     *httptest.Server
	DataDragon *FakeDataDragon
	Repos      *repository.Repositories
	Services   *service.Services
	Hub        *websocket.Hub
	Scheduler  *roulette.ManualScheduler
	Config     *config.Config
}

type serverOptions struct {
	skipLoad bool
	rules    roulette.Rules
}

type ServerOption func(*serverOptions)

// WithoutCatalog leaves the catalog in the loading state.
func WithoutCatalog() ServerOption {
	return func(o *serverOptions) { o.skipLoad = true }
}

func WithRules(rules roulette.Rules) ServerOption {
	return func(o *serverOptions) { o.rules = rules }
}

// NewTestServer wires the full stack against a fake Data Dragon and an
// in-memory snapshot store. Tables tick on a ManualScheduler so tests drive
// time with ts.Scheduler.Advance. Unless WithoutCatalog is given the
// catalog is loaded before returning.
func NewTestServer(t *testing.T, opts ...ServerOption) *TestServer {
	t.Helper()

	o := serverOptions{rules: roulette.DefaultRules()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := TestConfig()
	dd := NewFakeDataDragon(t)
	repos := memory.NewRepositories()
	services := service.NewServices(repos, cfg, NewDataDragonClient(dd), o.rules)

	scheduler := roulette.NewManualScheduler()
	hub := websocket.NewHub(websocket.TableConfig{
		Catalog:   services.Catalog,
		Rules:     o.rules,
		Interval:  cfg.TickInterval,
		Scheduler: scheduler,
	})
	go hub.Run()

	if !o.skipLoad {
		if err := services.Catalog.Load(context.Background()); err != nil {
			t.Fatalf("failed to load catalog: %v", err)
		}
	}

	router := api.NewRouter(services, hub, cfg)
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:     server,
		DataDragon: dd,
		Repos:      repos,
		Services:   services,
		Hub:        hub,
		Scheduler:  scheduler,
		Config:     cfg,
	}

	t.Cleanup(func() {
		hub.Stop()
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.BaseURL(), path)
}

// WebSocketURL returns the table endpoint URL
func (ts *TestServer) WebSocketURL() string {
	wsURL := "ws" + ts.BaseURL()[4:] // Replace "http" with "ws"
	return wsURL + "/api/v1/ws"
}
