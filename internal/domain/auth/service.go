package auth

import "context"

type AuthService interface {
	// Verify reports whether secret equals the configured admin secret.
	// A mismatch is not an error.
	Verify(secret string) bool

	// VerifyAdminPassword checks the password and issues an admin session token on success.
	VerifyAdminPassword(ctx context.Context, req VerifyAdminRequest) (VerifyAdminResponse, error)

	// Logout revokes an admin session token.
	Logout(ctx context.Context, token string) error
}
