package admissions

import (
	"context"
	"net/http"
	"strconv"
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

type AdmissionController struct {
	Log              *zap.Logger
	AdmissionUsecase contracts.AdmissionUsecase
}

func NewAdmissionController(logger *zap.Logger, admissionUsecase contracts.AdmissionUsecase) *AdmissionController {
	return &AdmissionController{
		Log:              logger,
		AdmissionUsecase: admissionUsecase,
	}
}

func (ctrl *AdmissionController) Admit(w http.ResponseWriter, r *http.Request) {
	request := new(requests.AdmitPatient)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	request.AdmittedBy = utils.GetStaffName(r.Context())

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AdmissionUsecase.Admit(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PatientAdmittedSuccess, response)
}

func (ctrl *AdmissionController) MarkCleared(w http.ResponseWriter, r *http.Request) {
	request := &requests.MarkCleared{
		AdmissionID: chi.URLParam(r, constvars.URLParamAdmissionID),
		ClearedBy:   utils.GetStaffName(r.Context()),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AdmissionUsecase.MarkCleared(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AdmissionClearedSuccess, response)
}

func (ctrl *AdmissionController) CompleteDischarge(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CompleteDischarge)
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
	}

	request.AdmissionID = chi.URLParam(r, constvars.URLParamAdmissionID)
	request.DischargedBy = utils.GetStaffName(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.AdmissionUsecase.CompleteDischarge(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DischargeCompletedSuccess, response)
}

func (ctrl *AdmissionController) CancelAdmission(w http.ResponseWriter, r *http.Request) {
	admissionID := chi.URLParam(r, constvars.URLParamAdmissionID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.AdmissionUsecase.CancelAdmission(ctx, admissionID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AdmissionCancelledSuccess, nil)
}

func (ctrl *AdmissionController) AssignDischargeNurse(w http.ResponseWriter, r *http.Request) {
	request := new(requests.AssignDischargeNurse)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	request.AdmissionID = chi.URLParam(r, constvars.URLParamAdmissionID)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AdmissionUsecase.AssignDischargeNurse(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DischargeNurseSetSuccess, response)
}

func (ctrl *AdmissionController) ListAdmitted(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AdmissionUsecase.ListAdmitted(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAdmissionsSuccess, response)
}

func (ctrl *AdmissionController) ListDischarged(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, _ := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamPage))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamPageSize))
	if pageSize < 1 {
		pageSize = constvars.DefaultPageSize
	}

	response, total, err := ctrl.AdmissionUsecase.ListDischarged(ctx, page, pageSize)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(int(total), page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetDischargedSuccess, pagination, response)
}
