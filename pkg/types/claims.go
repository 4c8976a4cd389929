package types

import "github.com/golang-jwt/jwt/v5"

// Claims carries the directory identity of the caller. Subject (sub) is the
// external auth subject, UserID is the directory identifier.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
