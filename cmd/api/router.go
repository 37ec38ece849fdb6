package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/http/handlers"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/http/middleware"
)

type routerDeps struct {
	Logger      *zap.Logger
	CORSOrigins []string
	Leads       *handlers.LeadHandler
	Validation  *handlers.ValidationHandler
	Reports     *handlers.ReportHandler
	Layout      *handlers.LayoutConfigHandler
	Health      *handlers.HealthHandler
}

func newRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", d.Leads.List)
		r.Post("/", d.Leads.Create)
		r.Get("/search", d.Leads.Search)
		r.Get("/page", d.Leads.Page)
		r.Post("/check-email", d.Validation.Handle)
		r.Get("/{id}", d.Leads.Get)
		r.Put("/{id}", d.Leads.Update)
		r.Delete("/{id}", d.Leads.Delete)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard", d.Reports.Dashboard)
		r.Get("/summary", d.Reports.Summary)
		r.Get("/export.csv", d.Reports.ExportCSV)
		r.Get("/export.xls", d.Reports.ExportExcel)
	})

	r.Get("/layout-config", d.Layout.Get)
	r.Patch("/layout-config", d.Layout.Patch)

	r.Get("/health", d.Health.Handle)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
