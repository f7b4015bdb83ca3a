package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printdesk/printdesk/internal/catalog"
	"github.com/printdesk/printdesk/internal/observability"
	"github.com/printdesk/printdesk/internal/pricing"
	"github.com/printdesk/printdesk/internal/sales"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	CatalogHandler *catalog.Handler
	PricingHandler *pricing.Handler
	SalesHandler   *sales.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with Printdesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	params.CatalogHandler.MountRoutes(r)
	params.PricingHandler.MountRoutes(r)
	params.SalesHandler.MountRoutes(r)

	return r
}
