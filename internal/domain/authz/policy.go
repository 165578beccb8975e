// Package authz contiene la política de autorización del módulo de estoque:
// un mapa explícito perfil → capacidades. Un perfil desconocido no tiene ninguna.
package authz

import "github.com/jhoicas/confeitaria-api/internal/domain"

// Role perfil de un usuario de la confeitaria.
type Role string

// Perfiles reconocidos. La jerarquía no se asume lineal: cada perfil declara sus capacidades.
const (
	RoleSupervisorSenior Role = "SUPERVISOR_SENIOR"
	RoleSupervisorJunior Role = "SUPERVISOR_JUNIOR"
	RoleConfeiteiro      Role = "CONFEITEIRO"
	RoleAtendente        Role = "ATENDENTE"
)

// Capability operación de estoque que puede concederse a un perfil.
type Capability string

const (
	CapCreate  Capability = "create"
	CapListAll Capability = "listAll"
	CapReadOne Capability = "readOne"
	CapUpdate  Capability = "update"
	CapDelete  Capability = "delete"
)

type capSet map[Capability]struct{}

func caps(cs ...Capability) capSet {
	s := make(capSet, len(cs))
	for _, c := range cs {
		s[c] = struct{}{}
	}
	return s
}

var policy = map[Role]capSet{
	RoleSupervisorSenior: caps(CapCreate, CapListAll, CapReadOne, CapUpdate, CapDelete),
	RoleSupervisorJunior: caps(CapCreate, CapListAll, CapReadOne, CapUpdate),
	RoleConfeiteiro:      caps(CapListAll, CapReadOne, CapUpdate),
	RoleAtendente:        caps(CapListAll, CapReadOne),
}

// Identity usuario ya autenticado que ejecuta la operación.
type Identity struct {
	UserID string
	Role   Role
}

// Valid indica si el perfil existe en la política.
func (r Role) Valid() bool {
	_, ok := policy[r]
	return ok
}

// CanPerform indica si el perfil tiene la capacidad. Perfil desconocido: false.
func CanPerform(role Role, c Capability) bool {
	set, ok := policy[role]
	if !ok {
		return false
	}
	_, ok = set[c]
	return ok
}

// Authorize devuelve domain.ErrForbidden si la identidad no puede ejecutar c.
func Authorize(id Identity, c Capability) error {
	if id.UserID == "" || !CanPerform(id.Role, c) {
		return domain.ErrForbidden
	}
	return nil
}

// Capabilities lista las capacidades del perfil en orden estable.
func Capabilities(role Role) []Capability {
	all := []Capability{CapCreate, CapListAll, CapReadOne, CapUpdate, CapDelete}
	out := make([]Capability, 0, len(all))
	for _, c := range all {
		if CanPerform(role, c) {
			out = append(out, c)
		}
	}
	return out
}
