package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/repository"
)

// Models lists every table the catalog store owns, parents first.
var Models = []any{
	&domain.Catalog{},
	&domain.Champion{},
	&domain.Item{},
	&domain.Keystone{},
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Catalog: NewCatalogRepository(db),
	}
}
