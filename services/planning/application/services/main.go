package services

import (
	"github.com/ghuser/parstock/pkg/app"
	catalogapp "github.com/ghuser/parstock/services/catalog/application/services"
	countingapp "github.com/ghuser/parstock/services/counting/application/services"
	"github.com/ghuser/parstock/services/planning/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Planning *PlanningService
}

// New wires the planning application services with infrastructure from the
// Application container, rebuilding the upstream catalog and counting
// services it reads from.
func New(a *app.Application) *Services {
	boms := postgres.NewBomRepository(a.Db)
	catalog := catalogapp.New(a).Catalog
	counting := countingapp.New(a).Counting
	return &Services{
		Planning: NewPlanningService(boms, catalog, counting),
	}
}
