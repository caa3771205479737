package auth

type VerifyAdminRequest struct {
	Password string `json:"password"`
}

// VerifyAdminResponse reports whether the password matched. A session token
// is issued only when it did.
type VerifyAdminResponse struct {
	Valid     bool   `json:"valid"`
	Token     string `json:"token,omitempty"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}
