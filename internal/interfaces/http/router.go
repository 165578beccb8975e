package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/auth"
	"github.com/jhoicas/confeitaria-api/internal/application/stock"
	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC  *stock.UseCase
	ReportUC *stock.ReportUseCase
	AuthUC   *auth.AuthUseCase
	Verifier *auth.Verifier
	Log      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Estoque (protegido: Bearer Token + capacidad del perfil)
	st := api.Group("/stock", AuthMiddleware(deps.Verifier, deps.Log))
	h := NewStockHandler(deps.StockUC, deps.ReportUC, deps.Log)
	can := func(c authz.Capability) fiber.Handler { return RequireCapability(c, deps.Log) }

	st.Post("/", can(authz.CapCreate), h.Create)
	st.Get("/", can(authz.CapListAll), h.List)
	st.Get("/low-stock", can(authz.CapListAll), h.LowStock)
	st.Get("/report.pdf", can(authz.CapListAll), h.RestockReport)
	st.Get("/ingredient/:id", can(authz.CapReadOne), h.GetByID)
	st.Put("/ingredient/:id", can(authz.CapUpdate), h.Update)
	st.Delete("/ingredient/:id", can(authz.CapDelete), h.Delete)
}
