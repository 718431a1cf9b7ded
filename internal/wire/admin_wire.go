package wire

import (
	"dampit-rental/internal/adaptor"
	"dampit-rental/pkg/middleware"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func AdminRoutes(router *chi.Mux, handler *adaptor.AdminHandler, config *utils.Config, log *zap.Logger) {
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Get("/dashboard", handler.Dashboard)
		r.Get("/revenue", handler.Revenue)
	})
}
