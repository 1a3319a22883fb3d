package services

import (
	"github.com/ghuser/parstock/pkg/app"
	catalogapp "github.com/ghuser/parstock/services/catalog/application/services"
	"github.com/ghuser/parstock/services/counting/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Counting *CountingService
}

// New wires the counting application services with infrastructure from the
// Application container. The catalog service is rebuilt here rather than
// shared; both contexts read the same slots.
func New(a *app.Application) *Services {
	repo := postgres.NewRunRepository(a.Db, a.EventBus)
	catalog := catalogapp.New(a).Catalog
	return &Services{
		Counting: NewCountingService(repo, catalog),
	}
}
