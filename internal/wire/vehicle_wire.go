package wire

import (
	"dampit-rental/internal/adaptor"
	"dampit-rental/pkg/middleware"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func VehicleRoutes(router *chi.Mux, handler *adaptor.VehicleHandler, config *utils.Config, log *zap.Logger) {
	router.Route("/vehicle", func(r chi.Router) {
		// Browsing the fleet needs no account.
		r.Get("/", handler.GetAll)
		r.Get("/search", handler.Search)
		r.Get("/{id}", handler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(config.JWT, log))
			r.Use(middleware.Admin(log))

			r.Post("/", handler.Create)
			r.Put("/{id}", handler.Update)
			r.Delete("/{id}", handler.Delete)
		})
	})
}
