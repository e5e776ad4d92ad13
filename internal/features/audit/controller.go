package audit

import (
	"go-dashboard/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	AuditService AuditService
}

func NewAuditController(auditService AuditService) *AuditController {
	return &AuditController{
		AuditService: auditService,
	}
}

// ListAuditLogs godoc
// @Summary List audit entries
// @Description List recent layout save/delete audit entries for a user
// @Tags audit
// @Produce json
// @Param userId query string true "User identifier (email or hex id)"
// @Param limit query int false "Max entries (default 50)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/audit [get]
func (ctrl *AuditController) ListAuditLogs(ctx *fiber.Ctx) error {
	userID := ctx.Query("userId")
	if userID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}

	userKey, err := utils.DeriveUserKey(userID)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user ID"})
	}

	limit := int64(ctx.QueryInt("limit", 50))

	entries, err := ctrl.AuditService.ListByUser(ctx.UserContext(), userKey, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "entries": entries})
}
