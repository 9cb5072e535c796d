package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medstock-api/internal/application/alerts"
	"github.com/jhoicas/medstock-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Alerts      *alerts.AlertUseCase
	JWTSecret   string
	JWTIssuer   string
	ServiceName string
	Metrics     nethttp.Handler // nil = sin /metrics
	Log         zerolog.Logger
}

// Router registra health, métricas y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	alertHandler := NewAlertHandler(deps.Alerts, deps.Log)

	// Alertas (cualquier rol autenticado)
	alertsGroup := api.Group("/alerts")
	alertsGroup.Get("/", alertHandler.List)
	alertsGroup.Get("/summary", alertHandler.Summary)
	alertsGroup.Get("/export", alertHandler.Export)
	alertsGroup.Get("/acknowledgments", alertHandler.Acknowledgments)
	alertsGroup.Post("/:id/acknowledge", RequireRole(jwt.RoleAdmin, jwt.RoleTechnician), alertHandler.Acknowledge)
	alertsGroup.Delete("/:id/acknowledge", RequireRole(jwt.RoleAdmin, jwt.RoleTechnician), alertHandler.Unacknowledge)

	// Caché de colecciones (solo admin o el backend con token de servicio)
	api.Post("/collections/invalidate", RequireRole(jwt.RoleAdmin), alertHandler.InvalidateCollections)
}
