package adaptor

import (
	"context"
	"io"
	"net/http"

	"dampit-rental/internal/dto/request"
	"dampit-rental/internal/usecase"
	"dampit-rental/pkg/storage"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	query := r.URL.Query()
	req := &request.UserFilterRequest{
		Role:      query.Get("role"),
		Gender:    query.Get("gender"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		PaginatedRequest: request.PaginatedRequest{
			Page:  page,
			Limit: limit,
		},
	}

	users, err := h.service.GetAll(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "users retrieved", users)
}

// GetProfile resolves the caller's own profile from the bearer token.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	user, err := h.service.GetByID(r.Context(), claims, claims.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "profile retrieved", user)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	user, err := h.service.GetByID(r.Context(), claims, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "user retrieved", user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	user, err := h.service.Update(r.Context(), claims, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "user updated", user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), claims, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "user deleted", nil)
}

func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "avatar", h.service.UploadAvatar)
}

func (h *UserHandler) UploadKTP(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "ktp", h.service.UploadKTP)
}

type uploadFunc func(ctx context.Context, userID uuid.UUID, filename, contentType string, file io.Reader) (string, error)

func (h *UserHandler) upload(w http.ResponseWriter, r *http.Request, field string, save uploadFunc) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadSize)
	if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
		utils.ResponseBadRequest(w, "file exceeds the 5MB upload limit", nil)
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		utils.ResponseBadRequest(w, "missing '"+field+"' file field", nil)
		return
	}
	defer file.Close()

	url, err := save(r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, field+" uploaded", map[string]string{"url": url})
}

func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	url, err := h.service.GetAvatar(r.Context(), claims, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "avatar retrieved", map[string]string{"url": url})
}

func (h *UserHandler) GetKTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	url, err := h.service.GetKTP(r.Context(), claims, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "ktp retrieved", map[string]string{"url": url})
}
