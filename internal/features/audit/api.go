package audit

import (
	"go-dashboard/internal/common/api"
	"go-dashboard/internal/config"
	"go-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	Controller *AuditController
	Config     *config.Config
}

func NewAuditApi(controller *AuditController, cfg *config.Config) api.Route {
	return &AuditApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (a *AuditApi) Setup(app *fiber.App) {
	group := app.Group("/api/audit", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.ListAuditLogs)
}
