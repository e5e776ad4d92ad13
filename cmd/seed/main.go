package main

import (
	"context"

	"go-dashboard/internal/config"
	"go-dashboard/internal/database"
	"go-dashboard/internal/features/audit"
	"go-dashboard/internal/features/preferences"
	"go-dashboard/internal/logger"
	"go-dashboard/pkg/sample"
	"go-dashboard/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const demoUserID = "demo-user"

// Seed creates demo dashboard preferences for a development user.
func Seed(
	lc fx.Lifecycle,
	cfg *config.Config,
	preferencesService preferences.PreferencesService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding demo dashboard preferences", zap.String("userId", demoUserID))

				layouts := []preferences.Layout{
					preferences.DefaultLayout(),
					salesLayout(),
				}

				for _, layout := range layouts {
					if _, err := preferencesService.SaveLayout(context.Background(), demoUserID, layout); err != nil {
						logger.Error("Failed to seed layout", zap.String("layout", layout.Name), zap.Error(err))
						return
					}
					logger.Info("Layout seeded", zap.String("layout", layout.Name))
				}

				utils.SetSecret(cfg.JWTSecret)
				token, err := utils.GenerateToken(demoUserID)
				if err != nil {
					logger.Error("Failed to generate demo token", zap.Error(err))
					return
				}
				logger.Info("Seeding complete")
				logger.Info("Demo bearer token", zap.String("token", token))
			}()
			return nil
		},
	})
}

func salesLayout() preferences.Layout {
	return preferences.Layout{
		Name: "Sales",
		Widgets: []preferences.Widget{
			{
				ID:    utils.NewWidgetID(),
				Type:  preferences.WidgetTypeChart,
				Title: "Monthly Sales",
				X:     0, Y: 0, W: 6, H: 3,
				Config: map[string]interface{}{
					"chartType": "bar",
					"data":      sample.MonthlySales(7),
				},
			},
			{
				ID:    utils.NewWidgetID(),
				Type:  preferences.WidgetTypeMetric,
				Title: "Average Salary",
				X:     6, Y: 0, W: 3, H: 2,
				Config: map[string]interface{}{
					"aggregation": "avg",
					"field":       "salary",
				},
			},
			{
				ID:    utils.NewWidgetID(),
				Type:  preferences.WidgetTypeDataTable,
				Title: "Team Directory",
				X:     0, Y: 3, W: 12, H: 4,
				Config: map[string]interface{}{},
			},
		},
		GridCols:      12,
		GridRowHeight: 150,
	}
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			preferences.NewPreferencesRepository,
			audit.NewAuditRepository,
			audit.NewAuditService,
			preferences.NewPreferencesService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
