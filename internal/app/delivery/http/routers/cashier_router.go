package routers

import (
	"hims-service/internal/app/services/core/cashier"

	"github.com/go-chi/chi/v5"
)

func attachCashierRoutes(router chi.Router, cashierController *cashier.CashierController) {
	router.Get("/pending", cashierController.ListPending)
	router.Get("/receipts/preview/{patientID}", cashierController.PreviewReceipt)
	router.Post("/payments/{paymentID}/verify", cashierController.VerifyPayment)
}
