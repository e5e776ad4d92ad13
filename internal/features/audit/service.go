package audit

import (
	"context"

	common_models "go-dashboard/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type AuditService interface {
	// LogChange records a layout mutation. Auditing is best-effort: callers
	// ignore the returned error so a failed audit write never fails the
	// request it describes.
	LogChange(ctx context.Context, action common_models.AuditAction, userKey primitive.ObjectID, layoutName string, changes map[string]common_models.Change) error
	ListByUser(ctx context.Context, userKey primitive.ObjectID, limit int64) ([]common_models.AuditLog, error)
}

type AuditServiceImpl struct {
	AuditRepo AuditRepository
	Logger    *zap.Logger
}

func NewAuditService(auditRepo AuditRepository, logger *zap.Logger) AuditService {
	return &AuditServiceImpl{
		AuditRepo: auditRepo,
		Logger:    logger,
	}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action common_models.AuditAction, userKey primitive.ObjectID, layoutName string, changes map[string]common_models.Change) error {
	entry := &common_models.AuditLog{
		Action:     action,
		UserKey:    userKey,
		LayoutName: layoutName,
		Changes:    changes,
	}

	if err := s.AuditRepo.Insert(ctx, entry); err != nil {
		s.Logger.Warn("failed to write audit entry",
			zap.String("action", string(action)),
			zap.String("layout", layoutName),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *AuditServiceImpl) ListByUser(ctx context.Context, userKey primitive.ObjectID, limit int64) ([]common_models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.AuditRepo.FindByUserKey(ctx, userKey, limit)
}
