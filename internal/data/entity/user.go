package entity

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdministrator UserRole = "Administrator"
	RoleVeterinarian  UserRole = "Veterinarian"
	RoleReceptionist  UserRole = "Receptionist"
)

// Roles lists every assignable role.
var Roles = []UserRole{RoleAdministrator, RoleVeterinarian, RoleReceptionist}

// ParseRole matches a role name case-insensitively.
func ParseRole(s string) (UserRole, error) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", ErrInvalidRole
}

type User struct {
	BaseNoUpdate
	FullName     string     `db:"full_name"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         UserRole   `db:"role"`
	Active       bool       `db:"active"`
	LastAccessAt *time.Time `db:"last_access_at"`
}

// NormalizeIdentifier is applied to usernames and emails before they are
// stored or compared.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
