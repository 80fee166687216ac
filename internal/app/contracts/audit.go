package contracts

import (
	"context"

	"hims-service/internal/app/models"
)

// AuditSink journals money-affecting actions. Best-effort: failures are
// logged, never propagated.
type AuditSink interface {
	Record(ctx context.Context, entry *models.AuditLog)
}
