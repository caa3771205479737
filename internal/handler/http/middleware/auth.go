package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RevocationChecker reports whether the session with a given jti was logged out.
type RevocationChecker interface {
	IsRevoked(jti string) bool
}

// AuthRequired rejects requests without a verified, unrevoked token. It must
// run after a jwtauth verifier.
func AuthRequired(revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// Admin tokens always carry a jti
			if token.JwtID() == "" || revocations.IsRevoked(token.JwtID()) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
