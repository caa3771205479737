package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	VerifyPassword(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// VerifyPassword implements AuthHandler. A wrong password is reported in the
// body with valid=false rather than as an error status.
func (a *AuthHandlerImpl) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	var verifyReq auth.VerifyAdminRequest

	if err := json.NewDecoder(r.Body).Decode(&verifyReq); err != nil {
		slog.Error("VerifyPassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := a.authService.VerifyAdminPassword(r.Context(), verifyReq)
	if err != nil {
		slog.Error("VerifyPassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if !result.Valid {
		slog.Warn("Admin password rejected", "remote_addr", r.RemoteAddr)
	}
	response.Success(w, result)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), token); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", nil)
}
