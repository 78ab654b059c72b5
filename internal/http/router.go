package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(handler *Handler, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/uploads", handler.Upload)
		r.Get("/uploads/current", handler.CurrentBatch)
		r.Get("/uploads/history", handler.UploadHistory)

		r.Get("/sales", handler.ListSales)
		r.Get("/sales/summary", handler.Summary)
		r.Get("/sales/options", handler.FilterOptions)
		r.Get("/sales/clients/top", handler.TopClients)
		r.Get("/sales/payment-methods/{method}", handler.PaymentMethodDetail)

		r.Get("/reports/export", handler.ExportReport)
	})

	return r
}
