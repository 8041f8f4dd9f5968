package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-backend/internal/apperror"
	"github.com/sakif/portfolio-backend/internal/service"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// loginRequest is the expected body of POST /api/auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token. The client stores it and
// sends it back as "Authorization: Bearer <token>" on mutating requests.
type loginResponse struct {
	Token string `json:"token"`
}

// HandleLogin authenticates the admin and issues a JWT.
//
// HTTP: POST /api/auth/login
// BODY: {"username": "admin", "password": "..."}
//
//	200 {"token": "..."}        credentials valid
//	400 {"message": "Missing credentials"}  either field absent
//	401 {"message": "Invalid username or password"}  unknown user OR wrong
//	    password — deliberately the same body for both
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "Missing credentials"))
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, apperror.ValidationFailed("credentials", "Missing credentials"))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
