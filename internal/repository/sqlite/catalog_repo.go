// Package sqlite stores catalog snapshots in a single-file SQLite database.
// Each snapshot is one row holding the JSON-encoded catalog.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/repository"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create db directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS catalog_snapshots (
			version    TEXT PRIMARY KEY,
			locale     TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			payload    TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func NewRepositories(db *sql.DB) *repository.Repositories {
	return &repository.Repositories{Catalog: NewCatalogRepository(db)}
}

func (r *catalogRepository) Save(ctx context.Context, cat *domain.Catalog) error {
	payload, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO catalog_snapshots (version, locale, fetched_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(version) DO UPDATE SET
			locale = excluded.locale,
			fetched_at = excluded.fetched_at,
			payload = excluded.payload
	`, cat.Version, cat.Locale, cat.FetchedAt.UnixNano(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save catalog %s: %w", cat.Version, err)
	}
	return nil
}

func (r *catalogRepository) Latest(ctx context.Context) (*domain.Catalog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT version, fetched_at, payload FROM catalog_snapshots ORDER BY fetched_at DESC LIMIT 1`)
	return scanCatalog(row)
}

func (r *catalogRepository) GetByVersion(ctx context.Context, version string) (*domain.Catalog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT version, fetched_at, payload FROM catalog_snapshots WHERE version = ?`, version)
	return scanCatalog(row)
}

func (r *catalogRepository) Versions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT version FROM catalog_snapshots ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func scanCatalog(row *sql.Row) (*domain.Catalog, error) {
	var (
		version   string
		fetchedAt int64
		payload   string
	)
	if err := row.Scan(&version, &fetchedAt, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCatalogNotFound
		}
		return nil, err
	}

	var cat domain.Catalog
	if err := json.Unmarshal([]byte(payload), &cat); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", version, err)
	}
	cat.FetchedAt = time.Unix(0, fetchedAt).UTC()

	// Element versions are not part of the JSON form.
	for i := range cat.Champions {
		cat.Champions[i].Version = version
	}
	for i := range cat.Items {
		cat.Items[i].Version = version
	}
	for i := range cat.Keystones {
		cat.Keystones[i].Version = version
	}
	return &cat, nil
}
