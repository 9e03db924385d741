package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/authz"
	"github.com/aussiebroadwan/nexus/internal/nexus/blob"
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/internal/nexus/session"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/slogx"

	_ "github.com/aussiebroadwan/nexus/api/nexus" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limit profiles applied by ApplyRoutes.
type Limits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
}

func DefaultLimits() Limits {
	return Limits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	Limits      Limits
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *Metrics

	store    store.Store
	sessions *session.Manager
	blobs    blob.Store
	gate     *authz.Gate

	AuthService     *service.AuthService
	MFAService      *service.MFAService
	UserService     *service.UserService
	ProjectService  *service.ProjectService
	DocumentService *service.DocumentService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	sessions *session.Manager,
	blobs blob.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		Limits:       DefaultLimits(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      NewMetrics(),
		store:        st,
		sessions:     sessions,
		blobs:        blobs,
		gate:         &authz.Gate{Assignments: st.Assignments()},
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.authenticate,
	}

	return r
}

// Metrics exposes the router's collectors, mainly for tests.
func (r *Router) Metrics() *Metrics { return r.metrics }

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMFA()
	r.registerUsers()
	r.registerProjects()
	r.registerDocuments()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			PixelForge Nexus API
//	@version		0.1.0
//	@description	Project management portal with role based access control, document sharing and TOTP multi-factor authentication.
//	@description
//	@description	Sessions are opaque server-side tokens carried in an HTTP-only cookie set by /api/login.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/nexus
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:3000
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						nexus_sid
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with request metrics outermost.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	mws = append([]httpx.Middleware{r.metrics.Instrument(pattern)}, mws...)
	r.Mux.Handle(pattern, httpx.Chain(h, mws...))
}

func (r *Router) bySubject(cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitBySubject(cfg, sessionSubject)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		Sessions:    r.sessions,
		Metrics:     r.metrics,
	}

	// Login is limited per IP and username to slow down guessing
	r.handle("POST /api/login", http.HandlerFunc(h.HandleLogin),
		httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "username"),
	)
	r.handle("POST /api/logout", http.HandlerFunc(h.HandleLogout),
		httpx.RateLimitByIP(r.Limits.Moderate),
	)
	r.handle("GET /api/me", http.HandlerFunc(h.HandleMe),
		requireSession,
		r.bySubject(r.Limits.Lenient),
	)
	r.handle("POST /api/account/password", http.HandlerFunc(h.HandleChangePassword),
		requireSession,
		r.bySubject(r.Limits.Strict),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService, Metrics: r.metrics}

	r.handle("POST /api/mfa/setup", http.HandlerFunc(h.HandleSetup),
		requireSession,
		r.bySubject(r.Limits.Moderate),
	)
	// Strict: codes are only six digits
	r.handle("POST /api/mfa/verify", http.HandlerFunc(h.HandleVerify),
		requireSession,
		r.bySubject(r.Limits.Strict),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.handle("POST /api/users", http.HandlerFunc(h.HandleCreate),
		requireRole(domain.RoleAdmin),
		r.bySubject(r.Limits.Moderate),
	)
	r.handle("GET /api/users", http.HandlerFunc(h.HandleList),
		requireRole(domain.RoleAdmin),
		r.bySubject(r.Limits.Lenient),
	)
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}

	r.handle("POST /api/projects", http.HandlerFunc(h.HandleCreate),
		requireRole(domain.RoleAdmin),
		r.bySubject(r.Limits.Moderate),
	)
	r.handle("GET /api/projects", http.HandlerFunc(h.HandleList),
		requireSession,
		r.bySubject(r.Limits.Lenient),
	)
	r.handle("PATCH /api/projects/{id}/complete", http.HandlerFunc(h.HandleComplete),
		requireRole(domain.RoleAdmin),
		r.bySubject(r.Limits.Moderate),
	)
	r.handle("POST /api/projects/{id}/assign", http.HandlerFunc(h.HandleAssign),
		requireRole(domain.RoleAdmin, domain.RoleProjectLead),
		r.bySubject(r.Limits.Moderate),
	)
	r.handle("GET /api/projects/{id}/team", http.HandlerFunc(h.HandleTeam),
		r.requireProjectAccess("id"),
		r.bySubject(r.Limits.Lenient),
	)
}

func (r *Router) registerDocuments() {
	h := &DocumentsHandler{
		DocumentService: r.DocumentService,
		Gate:            r.gate,
	}

	r.handle("POST /api/projects/{id}/documents", http.HandlerFunc(h.HandleUpload),
		requireRole(domain.RoleAdmin, domain.RoleProjectLead),
		r.bySubject(r.Limits.Moderate),
	)
	r.handle("GET /api/projects/{id}/documents", http.HandlerFunc(h.HandleList),
		r.requireProjectAccess("id"),
		r.bySubject(r.Limits.Lenient),
	)
	// Access is checked against the owning project once the document is loaded
	r.handle("GET /api/documents/{id}/download", http.HandlerFunc(h.HandleDownload),
		requireSession,
		r.bySubject(r.Limits.Lenient),
	)
}

func (r *Router) registerSystem() {
	// Monitoring systems poll these frequently
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion),
		httpx.RateLimitByIP(r.Limits.Lenient),
	)
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.sessions.Backend, r.blobs),
		httpx.RateLimitByIP(r.Limits.Lenient),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
