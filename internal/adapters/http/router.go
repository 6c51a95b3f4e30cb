package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers the investment API routes and middleware stack.
// Centralizing routes here ensures consistent auth and error behavior across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/targets", handler.listTargets)
		r.Get("/targets/{target_id}", handler.getTarget)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Post("/orders", handler.createOrder)
			r.Post("/payments/verify", handler.verifyPayment)
			r.Get("/investments", handler.listInvestments)
			r.Get("/investments/stats", handler.investorStats)
		})
	})

	return r
}
