package wire

import (
	"dampit-rental/internal/adaptor"
	"dampit-rental/pkg/middleware"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ReservationRoutes(router *chi.Mux, handler *adaptor.ReservationHandler, config *utils.Config, log *zap.Logger) {
	router.Route("/reservation", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Post("/", handler.Create)
		r.Get("/user/{userId}", handler.GetByUserID)
		r.Get("/{id}", handler.GetByID)
		r.Put("/cancel/{id}", handler.Cancel)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin(log))

			r.Get("/", handler.GetAll)
			r.Get("/date-range", handler.GetByDateRange)
			r.Get("/vehicle/{vehicleId}", handler.GetByVehicleID)
			r.Put("/status/{id}", handler.UpdateStatus)
			r.Put("/{id}", handler.Update)
			r.Delete("/{id}", handler.Delete)
		})
	})
}
