package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// LocalIdentity key de Fiber Locals con la authz.Identity del usuario autenticado.
const LocalIdentity = "identity"

// identityVerifier lo implementa *auth.Verifier.
type identityVerifier interface {
	Verify(ctx context.Context, rawToken string) (authz.Identity, error)
}

// AuthMiddleware valida el Bearer Token JWT y guarda la identidad en c.Locals.
// Cualquier problema con el token responde 401 antes de llegar al handler.
func AuthMiddleware(v identityVerifier, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return writeError(c, log, domain.ErrUnauthenticated)
		}
		id, err := v.Verify(c.UserContext(), parts[1])
		if err != nil {
			return writeError(c, log, err)
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
// Sin middleware devuelve la identidad vacía, que authz siempre rechaza.
func GetIdentity(c *fiber.Ctx) authz.Identity {
	id, _ := c.Locals(LocalIdentity).(authz.Identity)
	return id
}
