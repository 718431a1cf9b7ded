package adaptor

import (
	"net/http"

	"dampit-rental/internal/usecase"
	"dampit-rental/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "dashboard retrieved", dashboard)
}

func (h *AdminHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	revenue, err := h.service.Revenue(r.Context(), query.Get("month"), query.Get("year"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "revenue retrieved", revenue)
}
