package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"

	"github.com/edvin/insightcrm/internal/api/docs"
	"github.com/edvin/insightcrm/internal/api/handler"
	mw "github.com/edvin/insightcrm/internal/api/middleware"
	"github.com/edvin/insightcrm/internal/api/response"
	"github.com/edvin/insightcrm/internal/config"
	"github.com/edvin/insightcrm/internal/core"
)

// Store is the database handle the server needs: the service queries
// plus a ping for readiness.
type Store interface {
	core.DB
	Ping(ctx context.Context) error
}

type Server struct {
	router      chi.Router
	logger      zerolog.Logger
	services    *core.Services
	store       Store
	cfg         *config.Config
	auditLogger *mw.AuditLogger
}

func NewServer(logger zerolog.Logger, store Store, cfg *config.Config) *Server {
	services := core.NewServices(store, core.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		JWTIssuer: cfg.JWTIssuer,
		TokenTTL:  cfg.JWTTTL,
	})

	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger,
		services:    services,
		store:       store,
		cfg:         cfg,
		auditLogger: mw.NewAuditLogger(store, logger),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS(s.cfg.CORSOrigins))
	if s.cfg.DevMode {
		s.router.Use(response.ExposeDetail)
	}
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// API documentation (no auth required)
	s.router.Get("/docs/openapi.json", s.handleOpenAPI)
	s.router.Get("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(scalarHTML))
	})

	auth := handler.NewAuth(s.services.Auth)
	customer := handler.NewCustomer(s.services.Customer)
	relationship := handler.NewRelationship(s.services.Relationship)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(s.services.Auth))
			r.Use(s.auditLogger.Middleware)

			r.Get("/auth/me", auth.Me)

			// Customers
			r.Get("/customers", customer.List)
			r.Post("/customers", customer.Create)
			r.Get("/customers/{id}", customer.Get)
			r.Put("/customers/{id}", customer.Update)
			r.Delete("/customers/{id}", customer.Delete)

			// Relationships
			r.Post("/customers/relationships", relationship.Create)
			r.Delete("/customers/relationships/{id}", relationship.Delete)
		})
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.store.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close flushes pending audit entries.
func (s *Server) Close() {
	s.auditLogger.Close()
}

const scalarHTML = `<!DOCTYPE html>
<html>
<head>
  <title>InsightCRM API</title>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
  <script id="api-reference" data-url="/docs/openapi.json"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
