package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/parstock/pkg/app"
	"github.com/ghuser/parstock/services/planning/application/handlers"
	appsvcs "github.com/ghuser/parstock/services/planning/application/services"
)

// PlanningRoutes registers planning endpoints on the provided chi router.
func PlanningRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/planning", func(r chi.Router) {
			r.Get("/picklist", handlers.NewPicklistHandler(svcs).Execute)
			r.Get("/suggestion", handlers.NewSuggestHandler(svcs).Execute)
			r.Get("/order", handlers.NewOrderListHandler(svcs).Execute)
			r.Get("/production", handlers.NewProductionListHandler(svcs).Execute)
			r.Get("/boms", handlers.NewListBomsHandler(svcs).Execute)
			r.Put("/boms", handlers.NewPutBomHandler(svcs).Execute)
			r.Delete("/boms/{key}", handlers.NewDeleteBomHandler(svcs).Execute)
			r.Get("/boms/slot-options", handlers.NewSlotOptionsHandler(svcs).Execute)
			r.Post("/sales-import", handlers.NewImportSalesHandler(svcs).Execute)
			r.Post("/prefill", handlers.NewApplyUsageHandler(svcs).Execute)
		})
	})
}
