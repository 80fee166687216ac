package routers

import (
	"hims-service/internal/app/services/core/admissions"

	"github.com/go-chi/chi/v5"
)

func attachAdmissionRoutes(router chi.Router, admissionController *admissions.AdmissionController) {
	router.Post("/", admissionController.Admit)
	router.Get("/", admissionController.ListAdmitted)
	router.Get("/discharged", admissionController.ListDischarged)
	router.Post("/{admissionID}/clear", admissionController.MarkCleared)
	router.Post("/{admissionID}/discharge", admissionController.CompleteDischarge)
	router.Patch("/{admissionID}/discharge-nurse", admissionController.AssignDischargeNurse)
	router.Delete("/{admissionID}", admissionController.CancelAdmission)
}
