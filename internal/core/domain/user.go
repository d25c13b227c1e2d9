package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCPF         = errors.New("invalid cpf")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user inactive")
	ErrUserExists         = errors.New("user already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Affiliation scopes a user to the institution it operates in. Only
// municipal- and school-level roles carry one; platform roles (super admin,
// support) leave both references empty.
type Affiliation struct {
	MunicipalityID   string `json:"municipality_id,omitempty"`
	MunicipalityName string `json:"municipality_name,omitempty"`
	SchoolID         string `json:"school_id,omitempty"`
	SchoolName       string `json:"school_name,omitempty"`
}

// Empty reports whether the affiliation carries no references at all.
func (a Affiliation) Empty() bool {
	return a.MunicipalityID == "" && a.SchoolID == ""
}

// User models an account in the portal. CPF is the login identifier.
type User struct {
	ID           string      `json:"id"`
	CPF          string      `json:"cpf"`
	Name         string      `json:"name"`
	Email        string      `json:"email,omitempty"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Active       bool        `json:"active"`
	Affiliation  Affiliation `json:"affiliation"`
	CreatedBy    string      `json:"created_by,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Scoped reports whether the user's role operates inside a specific
// municipality or school and therefore requires an affiliation.
func (u *User) Scoped() bool {
	switch u.Role {
	case RoleMunicipalManager, RoleMunicipalOperator,
		RoleDirector, RoleCoordinator, RoleSecretary, RoleTeacher:
		return true
	}
	return false
}
