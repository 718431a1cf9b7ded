package adaptor

import (
	"net/http"

	"dampit-rental/internal/dto/request"
	"dampit-rental/internal/usecase"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log.With(zap.String("handler", "vehicle")),
	}
}

func (h *VehicleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	vehicles, err := h.service.GetAll(r.Context(), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "vehicles retrieved", vehicles)
}

func (h *VehicleHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	vehicles, err := h.service.Search(r.Context(), r.URL.Query().Get("name"), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "vehicles retrieved", vehicles)
}

func (h *VehicleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "vehicle retrieved", vehicle)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	vehicle, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "vehicle created", vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	vehicle, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "vehicle updated", vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "vehicle deleted", nil)
}
