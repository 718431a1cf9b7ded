package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dampit-rental/internal/usecase"
	"dampit-rental/pkg/apperr"
	"dampit-rental/pkg/utils"

	"go.uber.org/zap"
)

// Handler aggregates the per-domain HTTP handlers.
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Vehicle     *VehicleHandler
	Reservation *ReservationHandler
	Admin       *AdminHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		User:        NewUserHandler(service.User, log),
		Vehicle:     NewVehicleHandler(service.Vehicle, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Admin:       NewAdminHandler(service.Admin, log),
	}
}

// writeError translates a service error into the failure envelope.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		utils.ResponseUnprocessable(w, err.Error(), apperr.FieldsOf(err))
	case apperr.KindBadRequest, apperr.KindInvalidArgument, apperr.KindInvalidTransition, apperr.KindUpload:
		utils.ResponseBadRequest(w, err.Error(), nil)
	case apperr.KindUnauthorized:
		utils.ResponseUnauthorized(w, err.Error())
	case apperr.KindForbidden:
		utils.ResponseForbidden(w, err.Error())
	case apperr.KindNotFound:
		utils.ResponseNotFound(w, err.Error())
	case apperr.KindConflict:
		utils.ResponseConflict(w, err.Error())
	default:
		log.Error("Unhandled service error", zap.Error(err))
		utils.ResponseInternalError(w, "internal server error")
	}
}

// decodeJSON parses the request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	return nil
}

// parsePagination reads page/limit query parameters. Absent parameters
// take defaults; present but malformed ones are rejected. Limits above
// 100 are clamped to the cap, matching PaginatedRequest.PerPage.
func parsePagination(r *http.Request) (page, limit int, err error) {
	page, limit = 1, 10

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, apperr.InvalidArgument("page must be a positive integer")
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, apperr.InvalidArgument("limit must be a positive integer")
		}
		if limit > 100 {
			limit = 100
		}
	}

	return page, limit, nil
}

// requestBaseURL rebuilds the externally visible origin for email links.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
