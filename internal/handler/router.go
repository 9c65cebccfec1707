package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/agroveda/agroveda-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware системы агроведа.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.CreateCustomer)
			r.Get("/", h.ListCustomers)
			r.Get("/lookup", h.LookupCustomer)
		})

		r.Route("/batches", func(r chi.Router) {
			r.Post("/", h.AddBatch)
			r.Get("/", h.ListBatches)
			r.Post("/{id}/status", h.SetBatchStatus)
			r.Post("/{id}/consume", h.ConsumeBatch)
		})

		r.Post("/scan/resolve", h.ResolveScan)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
