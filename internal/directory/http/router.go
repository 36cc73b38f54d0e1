package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/httpx"
	"github.com/aussiebroadwan/directory/pkg/slogx"

	_ "github.com/aussiebroadwan/directory/api/directory" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *httpx.Metrics

	store        store.Store
	RolesService *service.RolesService
	UserService  *service.UserService
}

func NewRouter(buildVersion string, st store.Store, metrics *httpx.Metrics, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      metrics,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerRoles()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Directory Admin Service API
//	@version		0.1.0
//	@description	Manages the role and user directories. Every change rewrites the whole stored collection.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/directory
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with per-IP rate limiting. The pattern
// doubles as the metrics route label.
func (r *Router) handle(pattern string, h http.HandlerFunc, limit httpx.RateLimitConfig) {
	r.Mux.Handle(pattern, httpx.Chain(h,
		r.metrics.Instrument(pattern),
		httpx.RateLimitByIP(limit),
	))
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.handle("GET /v1/roles", h.HandleList, httpx.ReadLimit)
	r.handle("POST /v1/roles", h.HandleCreate, httpx.WriteLimit)
	r.handle("GET /v1/roles/{id}", h.HandleGet, httpx.ReadLimit)
	r.handle("PUT /v1/roles/{id}", h.HandleUpdate, httpx.WriteLimit)
	r.handle("DELETE /v1/roles/{id}", h.HandleDelete, httpx.WriteLimit)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.handle("GET /v1/users", h.HandleList, httpx.ReadLimit)
	r.handle("POST /v1/users", h.HandleCreate, httpx.WriteLimit)
	r.handle("GET /v1/users/form", h.HandleForm, httpx.ReadLimit)
	r.handle("POST /v1/users/reload", h.HandleReload, httpx.WriteLimit)
	r.handle("GET /v1/users/{id}", h.HandleGet, httpx.ReadLimit)
	r.handle("PUT /v1/users/{id}", h.HandleUpdate, httpx.WriteLimit)
	r.handle("DELETE /v1/users/{id}", h.HandleDelete, httpx.WriteLimit)
}

func (r *Router) registerSystem() {
	// Probes poll often; they get the most generous limit.
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion), httpx.ProbeLimit)
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store), httpx.ProbeLimit)

	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
