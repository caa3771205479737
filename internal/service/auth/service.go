package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

type AuthServiceImpl struct {
	jwt.Service
	secret []byte
	hashed bool
}

// NewAuthService builds the admin gate around the configured secret. A
// secret that looks like a bcrypt hash is compared as one.
func NewAuthService(secret string, jwtService jwt.Service) auth.AuthService {
	hashed := false
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(secret, prefix) {
			hashed = true
			break
		}
	}
	return &AuthServiceImpl{
		Service: jwtService,
		secret:  []byte(secret),
		hashed:  hashed,
	}
}

// Verify implements auth.AuthService.
func (a *AuthServiceImpl) Verify(secret string) bool {
	if secret == "" {
		return false
	}
	if a.hashed {
		return bcrypt.CompareHashAndPassword(a.secret, []byte(secret)) == nil
	}
	return subtle.ConstantTimeCompare(a.secret, []byte(secret)) == 1
}

// VerifyAdminPassword implements auth.AuthService.
func (a *AuthServiceImpl) VerifyAdminPassword(ctx context.Context, req auth.VerifyAdminRequest) (auth.VerifyAdminResponse, error) {
	if !a.Verify(req.Password) {
		slog.Warn("admin password rejected")
		return auth.VerifyAdminResponse{Valid: false}, nil
	}

	token, expiresAt, err := a.Service.GenerateAdminToken()
	if err != nil {
		return auth.VerifyAdminResponse{}, fmt.Errorf("failed to generate admin token: %w", err)
	}

	return auth.VerifyAdminResponse{
		Valid:     true,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token)
	return nil
}
