package service

import (
	"github.com/dom/league-roulette/internal/config"
	"github.com/dom/league-roulette/internal/repository"
	"github.com/dom/league-roulette/internal/roulette"
)

type Services struct {
	Catalog *CatalogService
	Roll    *RollService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, source DataSource, rules roulette.Rules) *Services {
	catalog := NewCatalogService(source, repos.Catalog, cfg.FetchTimeout)
	return &Services{
		Catalog: catalog,
		Roll:    NewRollService(catalog, rules, nil),
	}
}
