package wire

import (
	"net/http"

	"dampit-rental/internal/adaptor"
	"dampit-rental/pkg/middleware"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter assembles the full HTTP surface.
func NewRouter(handler *adaptor.Handler, config *utils.Config, log *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Recover(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS())

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "ok", nil)
	})

	AuthRoutes(router, handler.Auth, config, log)
	OAuthRoutes(router, handler.Auth)
	UserRoutes(router, handler.User, config, log)
	VehicleRoutes(router, handler.Vehicle, config, log)
	ReservationRoutes(router, handler.Reservation, config, log)
	AdminRoutes(router, handler.Admin, config, log)

	return router
}
