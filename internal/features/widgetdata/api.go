package widgetdata

import (
	"go-dashboard/internal/common/api"
	"go-dashboard/internal/config"
	"go-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type WidgetDataApi struct {
	WidgetDataController *WidgetDataController
	Config               *config.Config
}

func NewWidgetDataApi(widgetDataController *WidgetDataController, cfg *config.Config) api.Route {
	return &WidgetDataApi{
		WidgetDataController: widgetDataController,
		Config:               cfg,
	}
}

func (a *WidgetDataApi) Setup(app *fiber.App) {
	group := app.Group("/api/dashboard", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Post("/data", a.WidgetDataController.GetLayoutData)
	group.Post("/table/query", a.WidgetDataController.QueryTable)
	group.Post("/table/export", a.WidgetDataController.ExportTable)
}
