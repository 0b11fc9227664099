package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the API routes and standard middleware
func NewRouter(h *Handlers, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("healthy"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/accounts/transfer", h.HandleTransfer)
		r.Post("/accounts/savings", h.HandleCreateSavings)
		r.Get("/accounts/{userID}", h.HandleListAccounts)
		r.Get("/transactions/user/{userID}", h.HandleUserTransactions)
	})

	return r
}
