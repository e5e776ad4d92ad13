package preferences

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PreferencesController struct {
	PreferencesService PreferencesService
	Logger             *zap.Logger
}

func NewPreferencesController(preferencesService PreferencesService, logger *zap.Logger) *PreferencesController {
	return &PreferencesController{
		PreferencesService: preferencesService,
		Logger:             logger,
	}
}

type saveLayoutRequest struct {
	UserID string  `json:"userId"`
	Layout *Layout `json:"layout"`
}

// GetDashboard godoc
// @Summary Get dashboard preferences
// @Description Fetch the preferences document for a user. A user with no document yet gets preferences: null, not an error.
// @Tags dashboard
// @Produce json
// @Param userId query string true "User identifier (email or hex id)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/dashboard [get]
func (ctrl *PreferencesController) GetDashboard(ctx *fiber.Ctx) error {
	userID := ctx.Query("userId")
	if userID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}

	doc, err := ctrl.PreferencesService.GetPreferences(ctx.UserContext(), userID)
	if err != nil {
		ctrl.Logger.Error("failed to load dashboard preferences", zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	// doc is nil for a brand-new user; the client bootstraps a default
	// layout when it sees preferences: null.
	return ctx.JSON(fiber.Map{
		"success":     true,
		"preferences": doc,
	})
}

// SaveDashboard godoc
// @Summary Save a dashboard layout
// @Description Create-or-update the named layout in the user's preferences document. The saved layout becomes active.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param body body saveLayoutRequest true "User ID and layout"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/dashboard [post]
func (ctrl *PreferencesController) SaveDashboard(ctx *fiber.Ctx) error {
	var req saveLayoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.UserID == "" || req.Layout == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID and layout are required"})
	}

	doc, err := ctrl.PreferencesService.SaveLayout(ctx.UserContext(), req.UserID, *req.Layout)
	if err != nil {
		if ve, ok := AsValidationError(err); ok {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Validation failed",
				"details": ve.Errors,
			})
		}
		ctrl.Logger.Error("failed to save dashboard preferences",
			zap.String("layout", req.Layout.Name),
			zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save dashboard preferences"})
	}

	return ctx.JSON(fiber.Map{
		"success":     true,
		"preferences": doc,
	})
}

// DeleteLayout godoc
// @Summary Delete a named layout
// @Description Remove the layout from the user's preferences document, re-pointing the active layout when needed.
// @Tags dashboard
// @Produce json
// @Param name path string true "Layout name"
// @Param userId query string true "User identifier (email or hex id)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/dashboard/layouts/{name} [delete]
func (ctrl *PreferencesController) DeleteLayout(ctx *fiber.Ctx) error {
	userID := ctx.Query("userId")
	if userID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}

	layoutName := ctx.Params("name")

	doc, err := ctrl.PreferencesService.DeleteLayout(ctx.UserContext(), userID, layoutName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		ctrl.Logger.Error("failed to delete layout",
			zap.String("layout", layoutName),
			zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete layout"})
	}

	return ctx.JSON(fiber.Map{
		"success":     true,
		"preferences": doc,
	})
}
