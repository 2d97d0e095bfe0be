// Package httpapi exposes the JSON HTTP API over the net-worth services.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simaogato/networth-backend/internal/usecase/asset"
	"github.com/simaogato/networth-backend/internal/usecase/dashboard"
	"github.com/simaogato/networth-backend/internal/usecase/history"
	"github.com/simaogato/networth-backend/internal/usecase/transaction"
)

// Server is the HTTP API server
type Server struct {
	AssetService       *asset.Service
	TransactionService *transaction.Service
	HistoryService     *history.Service
	DashboardService   *dashboard.Service

	apiToken       string
	metricsEnabled bool

	// now supplies "today" for the dashboard and projection defaults;
	// tests may replace it
	now func() time.Time
}

// NewServer creates a new API server instance
func NewServer(
	assetService *asset.Service,
	transactionService *transaction.Service,
	historyService *history.Service,
	dashboardService *dashboard.Service,
	apiToken string,
) *Server {
	return &Server{
		AssetService:       assetService,
		TransactionService: transactionService,
		HistoryService:     historyService,
		DashboardService:   dashboardService,
		apiToken:           apiToken,
		now:                time.Now,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.apiToken))

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", s.handleListAssets)
			r.Post("/", s.handleCreateAsset)
			r.Delete("/{id}", s.handleDeleteAsset)
			r.Post("/{id}/value", s.handleUpdateValue)
			r.Post("/{id}/contributions", s.handleAddContribution)
		})

		r.Get("/incomes", s.handleListIncomes)
		r.Post("/incomes", s.handleCreateIncome)
		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleCreateExpense)
		r.Put("/transactions/{id}", s.handleUpdateTransaction)
		r.Delete("/transactions/{id}", s.handleDeleteTransaction)

		r.Get("/networth/history", s.handleNetWorthHistory)
		r.Get("/networth/breakdown", s.handleNetWorthBreakdown)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/projection", s.handleProjection)
	})

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
