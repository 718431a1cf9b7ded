package wire

import (
	"dampit-rental/internal/adaptor"
	"dampit-rental/pkg/middleware"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func UserRoutes(router *chi.Mux, handler *adaptor.UserHandler, config *utils.Config, log *zap.Logger) {
	router.Route("/user", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Get("/profile", handler.GetProfile)
		r.Post("/avatar", handler.UploadAvatar)
		r.Post("/ktp", handler.UploadKTP)

		// Detail reads are guarded in the service: owner or admin only.
		r.Get("/avatar/{id}", handler.GetAvatar)
		r.Get("/ktp/{id}", handler.GetKTP)
		r.Get("/{id}", handler.GetByID)
		r.Put("/{id}", handler.Update)

		r.With(middleware.Admin(log)).Get("/", handler.GetAll)
		r.With(middleware.Admin(log)).Delete("/{id}", handler.Delete)
	})
}
