package routers

import (
	"hims-service/internal/app/services/core/billing"

	"github.com/go-chi/chi/v5"
)

func attachBillingRoutes(router chi.Router, billingController *billing.BillingController) {
	router.Get("/worklist", billingController.ListWorklist)
	router.Get("/invoices/{patientID}", billingController.BuildInvoice)
	router.Get("/payments", billingController.ListPayments)
	router.Post("/confirm", billingController.ConfirmForBilling)
	router.Post("/cancel", billingController.CancelConfirmation)
}
