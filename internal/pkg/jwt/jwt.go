package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenTypeAdmin is the "type" claim carried by admin session tokens.
const TokenTypeAdmin = "admin"

type Service interface {
	GenerateAdminToken() (token string, expiresAt int64, err error)
	ValidateAdminToken(tokenString string) error
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
	IsRevoked(jti string) bool
}

type JWTService struct {
	tokenTTL      time.Duration
	tokenAuth     *jwtauth.JWTAuth
	revokedTokens map[string]int64 // jti -> expiry
	mu            sync.RWMutex
	now           func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		tokenTTL:      tokenTTL,
		tokenAuth:     jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens: make(map[string]int64),
		now:           time.Now,
	}
}

// GenerateAdminToken issues a session token for a verified administrator.
// Each token carries a unique jti so two sessions opened in the same second
// can be revoked independently.
func (j *JWTService) GenerateAdminToken() (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.tokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"jti":  uuid.NewString(),
		"type": TokenTypeAdmin,
		"exp":  expiresAt,
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresAt, nil
}

// ValidateAdminToken checks a raw token string, used where the token cannot
// travel in the Authorization header (SSE connections).
func (j *JWTService) ValidateAdminToken(tokenString string) error {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeAdmin {
		return jwt.ErrInvalidJWT()
	}

	if j.IsTokenRevoked(tokenString) {
		return jwt.ErrInvalidJWT()
	}
	return nil
}

// RevokeToken remembers token until its expiry. Entries are keyed by the
// token's jti, so the same session stays revoked however the token is
// presented. Expired entries are pruned on every call.
func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	j.pruneLocked(now)

	key, expiresAt := token, now+int64(j.tokenTTL/time.Second)
	if parsed, err := j.tokenAuth.Decode(token); err == nil {
		if parsed.JwtID() != "" {
			key = parsed.JwtID()
		}
		if !parsed.Expiration().IsZero() {
			expiresAt = parsed.Expiration().Unix()
		}
	}
	j.revokedTokens[key] = expiresAt
}

// PruneRevoked forgets revoked tokens that have expired on their own and
// returns how many were dropped.
func (j *JWTService) PruneRevoked() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pruneLocked(j.now().Unix())
}

func (j *JWTService) pruneLocked(now int64) int {
	pruned := 0
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
			pruned++
		}
	}
	return pruned
}

// IsTokenRevoked reports whether the session behind a raw token was logged out.
func (j *JWTService) IsTokenRevoked(token string) bool {
	key := token
	if parsed, err := j.tokenAuth.Decode(token); err == nil && parsed.JwtID() != "" {
		key = parsed.JwtID()
	}
	return j.IsRevoked(key)
}

// IsRevoked reports whether the session with the given jti was logged out.
func (j *JWTService) IsRevoked(jti string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[jti]
	return revoked
}
