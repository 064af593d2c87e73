package models

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/ahaan1984/dee-portal-backend/internal/empid"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and account info.
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expires_in"`
	User      UserInfo `json:"user"`
}

// ResetPasswordRequest sets or replaces an account password. It doubles as
// the first-time setup path for accounts provisioned without one.
type ResetPasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// PasswordStatusResponse reports whether an account has completed setup.
type PasswordStatusResponse struct {
	Username    string `json:"username"`
	PasswordSet bool   `json:"password_set"`
}

// UserInfo describes the authenticated account in responses.
type UserInfo struct {
	Username string          `json:"username"`
	Role     empid.RoleClass `json:"role"`
	District string          `json:"district,omitempty"`
}

// JWTClaims is the access-token payload: the triple the authorization layer
// decides on.
type JWTClaims struct {
	Username string          `json:"username"`
	Role     empid.RoleClass `json:"role"`
	District string          `json:"district,omitempty"`
	jwt.RegisteredClaims
}
