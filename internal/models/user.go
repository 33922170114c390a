package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates portal roles.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleProfessor UserRole = "professor"
	RoleStudent   UserRole = "student"
)

// JWTClaims carries the identity attached to authenticated requests.
// Token issuance belongs to the account subsystem; this service only
// validates and reads.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	// AccessToken is the classroom provider token forwarded for import runs.
	AccessToken string `json:"access_token,omitempty"`
	jwt.RegisteredClaims
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
