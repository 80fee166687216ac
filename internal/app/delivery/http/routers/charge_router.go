package routers

import (
	"hims-service/internal/app/services/core/charges"

	"github.com/go-chi/chi/v5"
)

func attachChargeRoutes(router chi.Router, chargeController *charges.ChargeController) {
	router.Post("/", chargeController.CreateChargeSlip)
	router.Get("/voided", chargeController.ListVoided)
	router.Get("/patients/{patientID}", chargeController.ListByPatient)
	router.Post("/patients/{patientID}/void", chargeController.VoidServices)
	router.Post("/{transactionID}/services/{serviceID}/void", chargeController.VoidService)
}
