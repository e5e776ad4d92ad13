package widgetdata

import (
	"errors"

	"go-dashboard/internal/features/preferences"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WidgetDataController struct {
	WidgetDataService WidgetDataService
	Logger            *zap.Logger
}

func NewWidgetDataController(widgetDataService WidgetDataService, logger *zap.Logger) *WidgetDataController {
	return &WidgetDataController{
		WidgetDataService: widgetDataService,
		Logger:            logger,
	}
}

// GetLayoutData godoc
// @Summary Resolve widget data for a layout
// @Description Compute the data behind every widget of a layout, keyed by widget id
// @Tags widget-data
// @Accept json
// @Produce json
// @Param body body layoutDataRequest true "User and optional layout name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/dashboard/data [post]
func (ctrl *WidgetDataController) GetLayoutData(ctx *fiber.Ctx) error {
	var req layoutDataRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.UserID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}

	data, err := ctrl.WidgetDataService.GetLayoutData(ctx.UserContext(), req.UserID, req.LayoutName)
	if err != nil {
		if errors.Is(err, preferences.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		ctrl.Logger.Error("failed to resolve layout data", zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": data})
}

// QueryTable godoc
// @Summary Query a table widget
// @Description Search, filter, sort and paginate the rows behind a table widget
// @Tags widget-data
// @Accept json
// @Produce json
// @Param body body tableQueryRequest true "Table query"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/dashboard/table/query [post]
func (ctrl *WidgetDataController) QueryTable(ctx *fiber.Ctx) error {
	var req tableQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.UserID == "" || req.WidgetID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID and widget ID are required"})
	}

	result, err := ctrl.WidgetDataService.QueryTable(ctx.UserContext(), req.UserID, req.LayoutName, req.WidgetID, req.Query)
	if err != nil {
		if errors.Is(err, preferences.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		ctrl.Logger.Error("table query failed",
			zap.String("widget", req.WidgetID),
			zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "result": result})
}

// ExportTable godoc
// @Summary Export a table widget
// @Description Export every row matching the query as csv or xlsx
// @Tags widget-data
// @Accept json
// @Produce octet-stream
// @Param format query string true "Export format (csv or xlsx)"
// @Param body body tableQueryRequest true "Table query"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/dashboard/table/export [post]
func (ctrl *WidgetDataController) ExportTable(ctx *fiber.Ctx) error {
	var req tableQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.UserID == "" || req.WidgetID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID and widget ID are required"})
	}

	format := ctx.Query("format", "csv")

	data, filename, contentType, err := ctrl.WidgetDataService.ExportTable(ctx.UserContext(), req.UserID, req.LayoutName, req.WidgetID, format, req.Query)
	if err != nil {
		if errors.Is(err, preferences.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		ctrl.Logger.Error("table export failed",
			zap.String("widget", req.WidgetID),
			zap.String("format", format),
			zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(data)
}
