package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/pkg/jwt"
)

// Verifier resuelve quién hace la petición a partir del token Bearer.
// No decide qué puede hacer: eso es de authz.
type Verifier struct {
	secret   string
	userRepo repository.UserRepository
}

// NewVerifier construye el verificador.
func NewVerifier(secret string, userRepo repository.UserRepository) *Verifier {
	return &Verifier{secret: secret, userRepo: userRepo}
}

// Verify valida el token y carga el perfil vigente del usuario.
// Token ausente, malformado, expirado, con firma inválida, o usuario inexistente/inactivo: ErrUnauthenticated.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (authz.Identity, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return authz.Identity{}, domain.ErrUnauthenticated
	}
	userID, err := jwt.Parse(v.secret, rawToken)
	if err != nil {
		return authz.Identity{}, domain.ErrUnauthenticated
	}
	user, err := v.userRepo.FindByID(ctx, userID)
	if err != nil {
		return authz.Identity{}, &domain.RepositoryError{Op: "find_user_by_id", Err: err}
	}
	if user == nil || !user.Active() {
		return authz.Identity{}, domain.ErrUnauthenticated
	}
	return user.Identity(), nil
}
