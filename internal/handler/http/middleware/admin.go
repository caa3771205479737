package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAdmin {
			response.HandleError(w, auth.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
