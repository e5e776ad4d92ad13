package audit

import (
	"context"
	"time"

	"go-dashboard/internal/config"
	"go-dashboard/internal/database"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const retentionDays = 30

// RetentionJob prunes old audit entries and application logs on a cron
// schedule so the two append-only collections do not grow without bound.
type RetentionJob struct {
	cron      *cron.Cron
	schedule  string
	auditRepo AuditRepository
	db        *database.MongodbDB
	logger    *zap.Logger
}

func NewRetentionJob(cfg *config.Config, auditRepo AuditRepository, db *database.MongodbDB, logger *zap.Logger) *RetentionJob {
	return &RetentionJob{
		cron:      cron.New(),
		schedule:  cfg.Retention,
		auditRepo: auditRepo,
		db:        db,
		logger:    logger,
	}
}

// Start registers the prune function and starts the scheduler.
func (j *RetentionJob) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, j.prune); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("retention job scheduled", zap.String("schedule", j.schedule))
	return nil
}

// Stop halts the scheduler and waits for a running prune to finish.
func (j *RetentionJob) Stop(ctx context.Context) error {
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	return nil
}

func (j *RetentionJob) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	deleted, err := j.auditRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Warn("audit retention prune failed", zap.Error(err))
	} else if deleted > 0 {
		j.logger.Info("pruned audit entries", zap.Int64("deleted", deleted))
	}

	result, err := j.db.DB.Collection("logs").DeleteMany(ctx, bson.M{
		"created_on_utc": bson.M{"$lt": cutoff},
	})
	if err != nil {
		j.logger.Warn("log retention prune failed", zap.Error(err))
	} else if result.DeletedCount > 0 {
		j.logger.Info("pruned log entries", zap.Int64("deleted", result.DeletedCount))
	}
}
