package charges

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

type ChargeController struct {
	Log           *zap.Logger
	ChargeUsecase contracts.ChargeUsecase
}

func NewChargeController(logger *zap.Logger, chargeUsecase contracts.ChargeUsecase) *ChargeController {
	return &ChargeController{
		Log:           logger,
		ChargeUsecase: chargeUsecase,
	}
}

func (ctrl *ChargeController) CreateChargeSlip(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateChargeSlip)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ChargeUsecase.CreateChargeSlip(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ChargeSlipCreatedSuccess, response)
}

func (ctrl *ChargeController) VoidService(w http.ResponseWriter, r *http.Request) {
	request := new(requests.VoidService)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.TransactionID = chi.URLParam(r, constvars.URLParamTransactionID)
	request.ServiceID = chi.URLParam(r, constvars.URLParamServiceID)
	request.VoidedBy = utils.GetStaffName(r.Context())

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ChargeUsecase.VoidService(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ServiceVoidedSuccess, response)
}

func (ctrl *ChargeController) VoidServices(w http.ResponseWriter, r *http.Request) {
	request := new(requests.VoidServices)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PatientID = chi.URLParam(r, constvars.URLParamPatientID)
	request.VoidedBy = utils.GetStaffName(r.Context())

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.ChargeUsecase.VoidServices(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ServicesVoidedSuccess, response)
}

func (ctrl *ChargeController) ListVoided(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ChargeUsecase.ListVoided(ctx, department)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetVoidedChargesSuccess, response)
}

func (ctrl *ChargeController) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ChargeUsecase.ListByPatient(ctx, patientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientChargesSuccess, response)
}
