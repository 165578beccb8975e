package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// RequireCapability corta con 403 si el perfil del token no tiene la capacidad.
// Debe usarse DESPUÉS de AuthMiddleware. Los casos de uso vuelven a autorizar.
func RequireCapability(c authz.Capability, log *logger.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := authz.Authorize(GetIdentity(ctx), c); err != nil {
			return writeError(ctx, log, domain.ErrForbidden)
		}
		return ctx.Next()
	}
}
