package main

import (
	"net/http"
	"time"

	"github.com/farxc/dfc_dashboard/internal/logger"
	"github.com/farxc/dfc_dashboard/internal/report"
	"github.com/farxc/dfc_dashboard/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const version = "0.1.0"

type application struct {
	config  config
	store   store.Storage
	reports *report.Service
	logger  *logger.Logger
	now     func() time.Time
}

type config struct {
	addr        string
	db          dbConfig
	logLevel    string
	corsOrigins []string
}

type dbConfig struct {
	driver       string
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
	migrate      bool
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors(app.config.corsOrigins))

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", app.handleGetDashboard)
		r.Get("/financeiro-dashboard", app.handleGetForecast)
		r.Route("/orcamento", func(r chi.Router) {
			r.Get("/", app.handleGetBudget)
			r.Get("/export", app.handleExportBudget)
		})
		r.Get("/anos", app.handleGetYears)
		r.Get("/departamentos", app.handleGetDepartments)
		r.Route("/ingestion", func(r chi.Router) {
			r.Get("/history", app.handleGetIngestionHistory)
			r.Post("/", app.handleCreateIngestion)
			r.Patch("/{id}/status", app.handleUpdateIngestionStatus)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info("API", "Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}

func (app *application) clock() time.Time {
	if app.now != nil {
		return app.now()
	}
	return time.Now()
}
