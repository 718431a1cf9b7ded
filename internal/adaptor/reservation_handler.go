package adaptor

import (
	"net/http"

	"dampit-rental/internal/dto/request"
	"dampit-rental/internal/usecase"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	reservation, warnings, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseCreatedWithWarnings(w, "reservation created", reservation, warnings)
}

// GetAll lists reservations for triage: pending first, oldest pending on
// top, everything else newest first.
func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	reservations, err := h.service.GetAllTriage(r.Context(), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "reservations retrieved", reservations)
}

func (h *ReservationHandler) GetByDateRange(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	query := r.URL.Query()
	reservations, err := h.service.GetByDateRange(r.Context(),
		query.Get("startDate"), query.Get("endDate"), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "reservations retrieved", reservations)
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	reservation, err := h.service.GetByID(r.Context(), claims, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "reservation retrieved", reservation)
}

func (h *ReservationHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	reservations, err := h.service.GetByUserID(r.Context(), claims, chi.URLParam(r, "userId"), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "reservations retrieved", reservations)
}

func (h *ReservationHandler) GetByVehicleID(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	reservations, err := h.service.GetByVehicleID(r.Context(), chi.URLParam(r, "vehicleId"), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "reservations retrieved", reservations)
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	reservation, warnings, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccessWithWarnings(w, "reservation status updated", reservation, warnings)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	reservation, warnings, err := h.service.Cancel(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccessWithWarnings(w, "reservation cancelled", reservation, warnings)
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	reservation, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "reservation updated", reservation)
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "reservation deleted", nil)
}
