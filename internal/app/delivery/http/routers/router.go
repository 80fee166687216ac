package routers

import (
	"fmt"
	"time"

	"hims-service/internal/app/config"
	"hims-service/internal/app/delivery/http/middlewares"
	"hims-service/internal/app/services/core/admissions"
	"hims-service/internal/app/services/core/billing"
	"hims-service/internal/app/services/core/cashier"
	"hims-service/internal/app/services/core/charges"
	"hims-service/internal/app/services/core/promissories"
	"hims-service/internal/app/services/shared/notifications"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	chargeController *charges.ChargeController,
	billingController *billing.BillingController,
	promissoryController *promissories.PromissoryController,
	cashierController *cashier.CashierController,
	admissionController *admissions.AdmissionController,
	notificationController *notifications.NotificationController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.StaffSession)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/charges", func(r chi.Router) {
				attachChargeRoutes(r, chargeController)
			})

			r.Route("/billing", func(r chi.Router) {
				attachBillingRoutes(r, billingController)
			})

			r.Route("/promissories", func(r chi.Router) {
				attachPromissoryRoutes(r, promissoryController)
			})

			r.Route("/cashier", func(r chi.Router) {
				attachCashierRoutes(r, cashierController)
			})

			r.Route("/admissions", func(r chi.Router) {
				attachAdmissionRoutes(r, admissionController)
			})

			r.Get("/notifications/{department}", notificationController.ListUnread)
		})
	})
}
