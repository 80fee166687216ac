package contracts

import (
	"context"

	"hims-service/internal/app/models"
)

// NotificationSink records department notifications and publishes the
// matching domain event. Implementations are best-effort: failures are
// logged and never propagated to the caller.
type NotificationSink interface {
	Notify(ctx context.Context, notification *models.Notification)
	ClearUnread(ctx context.Context, patientID, department string) error
	FindUnread(ctx context.Context, department string) ([]models.Notification, error)
}
