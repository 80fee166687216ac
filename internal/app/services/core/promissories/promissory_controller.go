package promissories

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hims-service/internal/app/config"
	"hims-service/internal/app/contracts"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/exceptions"
	"hims-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PromissoryController struct {
	Log               *zap.Logger
	PromissoryUsecase contracts.PromissoryUsecase
	InternalConfig    *config.InternalConfig
}

func NewPromissoryController(logger *zap.Logger, promissoryUsecase contracts.PromissoryUsecase, internalConfig *config.InternalConfig) *PromissoryController {
	return &PromissoryController{
		Log:               logger,
		PromissoryUsecase: promissoryUsecase,
		InternalConfig:    internalConfig,
	}
}

// Submit accepts either a JSON body or a multipart form carrying an optional
// evidence image under the "evidence" field.
func (ctrl *PromissoryController) Submit(w http.ResponseWriter, r *http.Request) {
	request := new(requests.SubmitPromissory)

	if strings.HasPrefix(r.Header.Get(constvars.HeaderContentType), constvars.MIMEMultipartForm) {
		maxSize := ctrl.InternalConfig.Billing.EvidenceMaxUploadSizeInMB << 20
		err := r.ParseMultipartForm(maxSize)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
			return
		}

		request.PatientID = r.FormValue("patientId")
		request.PaymentExpected = r.FormValue("paymentExpected")
		request.Notes = r.FormValue("notes")
		request.Amount, _ = strconv.ParseFloat(r.FormValue("amount"), 64)

		file, header, err := r.FormFile("evidence")
		if err == nil {
			defer file.Close()
			request.Evidence = file
			request.EvidenceName = header.Filename
		}
	} else {
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
	}

	err := utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.PromissoryUsecase.Submit(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PromissorySubmittedSuccess, response)
}

func (ctrl *PromissoryController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	request := new(requests.UpdatePromissoryStatus)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PromissoryID = chi.URLParam(r, constvars.URLParamPromissoryID)
	request.ActedBy = utils.GetStaffName(r.Context())

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PromissoryUsecase.UpdateStatus(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PromissoryUpdatedSuccess, response)
}

func (ctrl *PromissoryController) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	request := new(requests.UpdatePromissoryAmount)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PromissoryID = chi.URLParam(r, constvars.URLParamPromissoryID)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PromissoryUsecase.UpdateAmount(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PromissoryUpdatedSuccess, response)
}

func (ctrl *PromissoryController) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PromissoryUsecase.FindAll(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPromissoriesSuccess, response)
}

func (ctrl *PromissoryController) FindByID(w http.ResponseWriter, r *http.Request) {
	promissoryID := chi.URLParam(r, constvars.URLParamPromissoryID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PromissoryUsecase.FindByID(ctx, promissoryID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPromissoriesSuccess, response)
}
