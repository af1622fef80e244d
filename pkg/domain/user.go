// Package domain holds the bank's entities, their validation rules and the
// error taxonomy shared by every service. Entities reference each other by id;
// there is no lazy loading, every relationship an operation needs is loaded
// explicitly by the service that needs it.
package domain

import (
	"fmt"
	"strings"
)

// Role distinguishes bank staff from clients.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// ParseRole validates a role string against the closed set of roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(s)); r {
	case RoleAdmin, RoleClient:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, s)
	}
}

// User is the owner of accounts, deposits, loans and transactions.
type User struct {
	ID       uint
	Name     string
	Surname  string
	Email    string
	Password string // bcrypt hash, never the plain text
	Role     Role
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
