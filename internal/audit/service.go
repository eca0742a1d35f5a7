package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"thunder-cargo/internal/auth"
	"thunder-cargo/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LogOptions struct {
	Actor       *auth.Session
	EntityType  string
	EntityID    any
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(ctx context.Context, db *gorm.DB, opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    fmt.Sprint(opts.EntityID),
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}
	if opts.Actor != nil {
		log.Username = opts.Actor.Username
		log.Role = string(opts.Actor.Role)
	}

	if err := db.WithContext(ctx).Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}

// Record is WriteLog for handlers: the mutation has already committed, so a
// failed audit row is logged at warn level instead of failing the request.
func Record(ctx context.Context, db *gorm.DB, opts LogOptions) {
	if err := WriteLog(ctx, db, opts); err != nil {
		zap.L().Warn("audit kaydı yazılamadı",
			zap.String("entity_type", opts.EntityType),
			zap.String("entity_id", fmt.Sprint(opts.EntityID)),
			zap.String("action", string(opts.Action)),
			zap.Error(err),
		)
	}
}
