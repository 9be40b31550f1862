package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dom/league-roulette/internal/domain"
)

const insertBatchSize = 200

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

// Save writes the snapshot row and replaces its champions, items and
// keystones in one transaction.
func (r *catalogRepository) Save(ctx context.Context, cat *domain.Catalog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "version"}},
			UpdateAll: true,
		}).Create(cat).Error
		if err != nil {
			return err
		}

		for _, model := range []any{&domain.Champion{}, &domain.Item{}, &domain.Keystone{}} {
			if err := tx.Where("version = ?", cat.Version).Delete(model).Error; err != nil {
				return err
			}
		}

		if len(cat.Champions) > 0 {
			if err := tx.CreateInBatches(withVersion(cat.Champions, cat.Version, setChampionVersion), insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(cat.Items) > 0 {
			if err := tx.CreateInBatches(withVersion(cat.Items, cat.Version, setItemVersion), insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(cat.Keystones) > 0 {
			if err := tx.CreateInBatches(orderedKeystones(withVersion(cat.Keystones, cat.Version, setKeystoneVersion)), insertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *catalogRepository) Latest(ctx context.Context) (*domain.Catalog, error) {
	return r.first(ctx, r.db.WithContext(ctx).Order("fetched_at DESC"))
}

func (r *catalogRepository) GetByVersion(ctx context.Context, version string) (*domain.Catalog, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("version = ?", version))
}

func (r *catalogRepository) Versions(ctx context.Context) ([]string, error) {
	var versions []string
	err := r.db.WithContext(ctx).Model(&domain.Catalog{}).
		Order("fetched_at DESC").
		Pluck("version", &versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *catalogRepository) first(_ context.Context, q *gorm.DB) (*domain.Catalog, error) {
	var cat domain.Catalog
	err := q.
		Preload("Champions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Keystones", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal ASC") }).
		First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCatalogNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// withVersion copies rows with their version column set, leaving the
// caller's catalog untouched.
func withVersion[T any](rows []T, version string, set func(*T, string)) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	for i := range out {
		set(&out[i], version)
	}
	return out
}

func setChampionVersion(c *domain.Champion, v string) { c.Version = v }
func setItemVersion(it *domain.Item, v string)        { it.Version = v }
func setKeystoneVersion(k *domain.Keystone, v string) { k.Version = v }

// orderedKeystones numbers the rows so a reload keeps the fetched order.
func orderedKeystones(rows []domain.Keystone) []domain.Keystone {
	for i := range rows {
		rows[i].Ordinal = i
	}
	return rows
}
