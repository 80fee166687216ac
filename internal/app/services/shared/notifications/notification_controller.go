package notifications

import (
	"context"
	"net/http"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationController struct {
	Log              *zap.Logger
	NotificationSink contracts.NotificationSink
}

func NewNotificationController(logger *zap.Logger, notificationSink contracts.NotificationSink) *NotificationController {
	return &NotificationController{
		Log:              logger,
		NotificationSink: notificationSink,
	}
}

// ListUnread serves the worklist banner each department polls.
func (ctrl *NotificationController) ListUnread(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, constvars.URLParamDepartment)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.NotificationSink.FindUnread(ctx, department)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetNotificationsSuccess, response)
}
