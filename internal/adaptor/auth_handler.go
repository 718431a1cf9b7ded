package adaptor

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"dampit-rental/internal/dto/request"
	"dampit-rental/internal/usecase"
	"dampit-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	user, warnings, err := h.service.Register(r.Context(), &req, requestBaseURL(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseCreatedWithWarnings(w, "registered, please check your email to verify your account", user, warnings)
}

func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	user, warnings, err := h.service.RegisterAdmin(r.Context(), &req, requestBaseURL(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseCreatedWithWarnings(w, "admin registered, please check the email to verify the account", user, warnings)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	auth, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "login successful", auth)
}

// Logout is an acknowledgement; the JWT stays valid until it expires and
// the client is expected to discard it.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "logout successful", nil)
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	auth, err := h.service.VerifyEmail(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "email verified", auth)
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req request.ResetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	warnings, err := h.service.RequestPasswordReset(r.Context(), &req, requestBaseURL(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccessWithWarnings(w, "password reset email sent", nil, warnings)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.service.ResetPassword(r.Context(), chi.URLParam(r, "token"), &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "password updated, please login with your new password", nil)
}

// newStateNonce mints the OAuth state value. The UUID fallback keeps
// the login flow alive if the system entropy source fails.
func newStateNonce() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

// GoogleLogin redirects the browser to the Google consent screen. The
// state nonce is mirrored in a short-lived cookie.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := newStateNonce()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.service.GoogleAuthURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback is the consent redirect target. It exchanges the code
// for a profile and issues a bearer token.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		utils.ResponseUnauthorized(w, "invalid oauth state")
		return
	}

	auth, err := h.service.GoogleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "login successful", auth)
}

// GoogleFailure is where the provider sends declined consents.
func (h *AuthHandler) GoogleFailure(w http.ResponseWriter, r *http.Request) {
	utils.ResponseUnauthorized(w, "google sign-in failed or was cancelled")
}
