package cashier

import (
	"context"
	"net/http"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/exceptions"
	"hims-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type CashierController struct {
	Log            *zap.Logger
	CashierUsecase contracts.CashierUsecase
}

func NewCashierController(logger *zap.Logger, cashierUsecase contracts.CashierUsecase) *CashierController {
	return &CashierController{
		Log:            logger,
		CashierUsecase: cashierUsecase,
	}
}

func (ctrl *CashierController) ListPending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.CashierUsecase.ListPending(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPendingPaymentsSuccess, response)
}

func (ctrl *CashierController) PreviewReceipt(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.CashierUsecase.PreviewReceipt(ctx, patientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetReceiptPreviewSuccess, response)
}

func (ctrl *CashierController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	request := new(requests.VerifyPayment)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	request.PaymentID = chi.URLParam(r, constvars.URLParamPaymentID)
	request.ProcessedBy = utils.GetStaffName(r.Context())

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.CashierUsecase.VerifyPayment(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentVerifiedSuccess, response)
}
