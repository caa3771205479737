package auth

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenRevoked           = errors.New("token has been revoked")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
