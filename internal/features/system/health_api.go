package system

import (
	"go-dashboard/internal/common/api"
	"go-dashboard/internal/database"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	db *database.MongodbDB
}

func NewHealthApi(db *database.MongodbDB) api.Route {
	return &HealthApi{db: db}
}

// Setup registers health check routes
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.health)
}

// health godoc
// @Summary Health check
// @Description Reports service and database health
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthApi) health(ctx *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if err := h.db.DB.Client().Ping(ctx.Context(), nil); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}
	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return ctx.Status(code).JSON(fiber.Map{
		"status":   status,
		"database": dbStatus,
	})
}
