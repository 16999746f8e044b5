package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/assignment"
	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/directory"
	"appraisal/internal/domain/notifications"
	"appraisal/internal/domain/reports"
	"appraisal/internal/domain/templates"
	"appraisal/internal/platform/config"
	"appraisal/internal/platform/db"
	"appraisal/internal/platform/email"
	"appraisal/internal/platform/jobs"
	"appraisal/internal/platform/metrics"
	adminhandler "appraisal/internal/transport/http/handlers/admin"
	appraisalhandler "appraisal/internal/transport/http/handlers/appraisal"
	assignmenthandler "appraisal/internal/transport/http/handlers/assignment"
	authhandler "appraisal/internal/transport/http/handlers/auth"
	directoryhandler "appraisal/internal/transport/http/handlers/directory"
	notificationshandler "appraisal/internal/transport/http/handlers/notifications"
	reportshandler "appraisal/internal/transport/http/handlers/reports"
	templateshandler "appraisal/internal/transport/http/handlers/templates"
	"appraisal/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
	Jobs   *jobs.Service
}

// New assembles the application without starting it; Run and the tests
// both build on it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	authStore := auth.NewStore(pool)
	directoryService := directory.NewService(directory.NewStore(pool))
	templateService := templates.NewService(templates.NewStore(pool))
	assignmentService := assignment.NewService(assignment.NewStore(pool), directoryService)
	appraisalService := appraisal.NewService(appraisal.NewStore(pool), assignmentService, templateService)
	reportService := reports.NewService(&reports.Store{DB: pool}, assignmentService, directoryService)
	notifyService := notifications.New(&notifications.Store{DB: pool}, email.New(cfg), cfg.EmailEnabled, cfg.EmailFrom)
	auditService := audit.New(pool)
	collector := metrics.New()
	jobService := jobs.New(pool, cfg, notifyService)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryService, authStore, auditService).RegisterRoutes(r)
		templateshandler.NewHandler(templateService, authStore, auditService).RegisterRoutes(r)
		assignmenthandler.NewHandler(assignmentService, authStore, notifyService, auditService, collector).RegisterRoutes(r)
		appraisalhandler.NewHandler(appraisalService, authStore, notifyService, auditService, collector).RegisterRoutes(r)
		reportshandler.NewHandler(reportService, authStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notifyService).RegisterRoutes(r)
		adminhandler.NewHandler(auditService, collector, authStore).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, Pool: pool, Router: router, Jobs: jobService}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}

func Run() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	app.Jobs.Start(ctx)

	log.Printf("appraisal server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
