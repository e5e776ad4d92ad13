package preferences

import (
	"go-dashboard/internal/common/api"
	"go-dashboard/internal/config"
	"go-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PreferencesApi struct {
	PreferencesController *PreferencesController
	Config                *config.Config
}

func NewPreferencesApi(preferencesController *PreferencesController, cfg *config.Config) api.Route {
	return &PreferencesApi{
		PreferencesController: preferencesController,
		Config:                cfg,
	}
}

func (a *PreferencesApi) Setup(app *fiber.App) {
	group := app.Group("/api/dashboard", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.PreferencesController.GetDashboard)
	group.Post("/", a.PreferencesController.SaveDashboard)
	group.Delete("/layouts/:name", a.PreferencesController.DeleteLayout)
}
