package audit

import (
	"context"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type auditSink struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewAuditSink(db *mongo.Database, logger *zap.Logger) contracts.AuditSink {
	return &auditSink{
		Collection: db.Collection(constvars.MongoCollectionAuditLogs),
		Logger:     logger,
	}
}

func (s *auditSink) Record(ctx context.Context, entry *models.AuditLog) {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}

	_, err := s.Collection.InsertOne(ctx, entry)
	if err != nil {
		s.Logger.Warn("failed to write audit journal",
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.Error(err),
		)
	}
}
