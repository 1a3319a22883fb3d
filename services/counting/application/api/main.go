package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/parstock/pkg/app"
	"github.com/ghuser/parstock/services/counting/application/handlers"
	appsvcs "github.com/ghuser/parstock/services/counting/application/services"
)

// CountingRoutes registers counting endpoints on the provided chi router.
func CountingRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/counting", func(r chi.Router) {
			r.Post("/runs", handlers.NewStartRunHandler(svcs).Execute)
			r.Get("/runs", handlers.NewGetRunHandler(svcs).Execute)
			r.Put("/runs/lines", handlers.NewCommitCountHandler(svcs).Execute)
			r.Post("/runs/cursor", handlers.NewMoveCursorHandler(svcs).Execute)
			r.Post("/runs/complete", handlers.NewCompleteRunHandler(svcs).Execute)
			r.Post("/runs/reset", handlers.NewResetRunHandler(svcs).Execute)
			r.Get("/runs/export", handlers.NewExportRunHandler(svcs).Execute)
		})
	})
}
