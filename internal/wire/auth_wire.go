package wire

import (
	"dampit-rental/internal/adaptor"
	"dampit-rental/pkg/middleware"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func AuthRoutes(router *chi.Mux, handler *adaptor.AuthHandler, config *utils.Config, log *zap.Logger) {
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Get("/verify/{token}", handler.VerifyEmail)
		r.Post("/reset", handler.RequestPasswordReset)
		r.Post("/reset/{token}", handler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(config.JWT, log))
			r.Post("/logout", handler.Logout)

			// Creating another admin requires an admin caller.
			r.With(middleware.Admin(log)).Post("/register-admin", handler.RegisterAdmin)
		})
	})
}

func OAuthRoutes(router *chi.Mux, handler *adaptor.AuthHandler) {
	router.Route("/googleOAuth", func(r chi.Router) {
		r.Get("/login", handler.GoogleLogin)
		r.Get("/protected", handler.GoogleCallback)
		r.Get("/failure", handler.GoogleFailure)
	})
}
