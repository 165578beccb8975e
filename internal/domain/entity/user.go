package entity

import (
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User funcionario de la confeitaria. Role es el perfil que consulta la política de autorización.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Phone        string
	Role         authz.Role
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active indica si la cuenta puede operar.
func (u *User) Active() bool {
	return u.Status == UserStatusActive
}

// Identity la identidad que consume el controlador de estoque.
func (u *User) Identity() authz.Identity {
	return authz.Identity{UserID: u.ID, Role: u.Role}
}
