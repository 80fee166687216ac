package routers

import (
	"hims-service/internal/app/services/core/promissories"

	"github.com/go-chi/chi/v5"
)

func attachPromissoryRoutes(router chi.Router, promissoryController *promissories.PromissoryController) {
	router.Post("/", promissoryController.Submit)
	router.Get("/", promissoryController.FindAll)
	router.Get("/{promissoryID}", promissoryController.FindByID)
	router.Patch("/{promissoryID}/status", promissoryController.UpdateStatus)
	router.Patch("/{promissoryID}/amount", promissoryController.UpdateAmount)
}
