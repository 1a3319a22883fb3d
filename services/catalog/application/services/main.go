package services

import (
	"github.com/ghuser/parstock/pkg/app"
	"github.com/ghuser/parstock/pkg/cache"
	"github.com/ghuser/parstock/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Catalog *CatalogService
}

// New wires the catalog application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewCatalogRepository(a.Db, a.EventBus)
	var catalogCache *cache.CatalogCache
	if a.Redis != nil {
		catalogCache = cache.NewCatalogCache(a.Redis)
	}
	return &Services{
		Catalog: NewCatalogService(repo, catalogCache),
	}
}
