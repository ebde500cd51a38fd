package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleEmpleado = "EMPLEADO"
)

// KnownRoles roles que la API reconoce, en orden de presentación.
var KnownRoles = []string{RoleAdmin, RoleEmpleado}

// IsKnownRole indica si role es uno de KnownRoles.
func IsKnownRole(role string) bool {
	for _, r := range KnownRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa un usuario local de la API.
type User struct {
	ID           string
	Username     string
	Email        string
	Name         string
	PasswordHash string // bcrypt
	Roles        []string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole indica si el usuario tiene el rol indicado.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
