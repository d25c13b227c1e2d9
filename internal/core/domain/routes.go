package domain

import (
	"fmt"
	"strings"
)

// PublicPrefixes are reachable without a session.
var PublicPrefixes = []string{"/login", "/register", "/forgot-password"}

// routePrefixes maps each role to the path prefixes it may enter. The first
// entry is the role's default landing area, used when an authenticated user
// requests a path outside its scope. A role missing from this table has no
// reachable protected routes.
var routePrefixes = map[Role][]string{
	RoleSuperAdmin:        {"/admin", "/support"},
	RoleSupportN1:         {"/support"},
	RoleSupportN2:         {"/support"},
	RoleMunicipalManager:  {"/municipal"},
	RoleMunicipalOperator: {"/municipal"},
	RoleDirector:          {"/school"},
	RoleCoordinator:       {"/school"},
	RoleSecretary:         {"/school"},
	RoleTeacher:           {"/teacher"},
	RoleGuardian:          {"/guardian"},
}

// AllowedPrefixes returns the path prefixes role may enter, default first.
func AllowedPrefixes(role Role) []string {
	return routePrefixes[role]
}

// DefaultPrefix returns the role's landing area, or "" for unknown roles.
func DefaultPrefix(role Role) string {
	prefixes := routePrefixes[role]
	if len(prefixes) == 0 {
		return ""
	}
	return prefixes[0]
}

// PathAllowed reports whether path falls under one of role's prefixes.
func PathAllowed(role Role, path string) bool {
	for _, prefix := range routePrefixes[role] {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// ValidateRouteTable confirms every role resolves to at least one prefix.
// Run at startup: a role missing from the table would strand its users
// behind endless login redirects.
func ValidateRouteTable() error {
	for _, role := range Roles {
		if len(routePrefixes[role]) == 0 {
			return fmt.Errorf("role %s has no route prefixes", role)
		}
	}
	return nil
}

// PublicPath reports whether path is reachable without authentication.
func PublicPath(path string) bool {
	for _, prefix := range PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
