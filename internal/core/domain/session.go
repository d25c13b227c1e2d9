package domain

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the claims bundle carried inside a signed session token.
// Built once at login, never mutated; there is no server-side session table.
type SessionClaims struct {
	jwt.RegisteredClaims
	CPF              string       `json:"cpf"`
	Name             string       `json:"name"`
	Role             Role         `json:"role"`
	Permissions      []Permission `json:"permissions"`
	MunicipalityID   string       `json:"municipality_id,omitempty"`
	MunicipalityName string       `json:"municipality_name,omitempty"`
	SchoolID         string       `json:"school_id,omitempty"`
	SchoolName       string       `json:"school_name,omitempty"`
}

// HasPermission reports whether perm was granted to this session.
func (c *SessionClaims) HasPermission(perm Permission) bool {
	for _, p := range c.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
