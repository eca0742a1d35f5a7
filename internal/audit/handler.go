package audit

import (
	"encoding/json"
	"strings"

	"thunder-cargo/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	Username    string             `json:"username"`
	Role        string             `json:"role"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	Before      json.RawMessage    `json:"before"`
	After       json.RawMessage    `json:"after"`
}

func rawJSON(s string) json.RawMessage {
	if s == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}

// GET /api/admin/audit-logs?entity_type=cargo&entity_id=CG001&username=admin
func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := db.WithContext(c.UserContext()).Model(&models.AuditLog{})

		if v := strings.TrimSpace(c.Query("entity_type")); v != "" {
			dbq = dbq.Where("entity_type = ?", v)
		}
		if v := strings.TrimSpace(c.Query("entity_id")); v != "" {
			dbq = dbq.Where("entity_id = ?", v)
		}
		if v := strings.TrimSpace(c.Query("username")); v != "" {
			dbq = dbq.Where("username = ?", v)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs could not be listed")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				Username:    l.Username,
				Role:        l.Role,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				Before:      rawJSON(l.BeforeData),
				After:       rawJSON(l.AfterData),
			})
		}
		return c.JSON(resp)
	}
}
