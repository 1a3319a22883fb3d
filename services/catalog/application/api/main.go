package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/parstock/pkg/app"
	"github.com/ghuser/parstock/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/parstock/services/catalog/application/services"
)

// CatalogRoutes registers catalog endpoints on the provided chi router.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/locations", handlers.NewListLocationsHandler().Execute)
			r.Get("/items", handlers.NewListItemsHandler(svcs).Execute)
			r.Post("/items", handlers.NewPostItemHandler(svcs).Execute)
			r.Post("/items/{id}/hide", handlers.NewHideItemHandler(svcs).Execute)
			r.Post("/items/{id}/copy-attributes", handlers.NewCopyAttributesHandler(svcs).Execute)
			r.Put("/overrides", handlers.NewPutOverridesHandler(svcs).Execute)
			r.Get("/pars", handlers.NewGetParSheetHandler(svcs).Execute)
			r.Put("/pars", handlers.NewPutParsHandler(svcs).Execute)
			r.Put("/unit-choice", handlers.NewPutUnitChoiceHandler(svcs).Execute)
		})
	})
}
