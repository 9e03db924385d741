package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/authz"
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/session"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

type ctxKey struct{}

// SessionFromContext returns the session resolved by the authenticate
// middleware, or nil for anonymous requests.
func SessionFromContext(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(ctxKey{}).(*domain.Session)
	return s
}

func contextWithSession(ctx context.Context, s *domain.Session) context.Context {
	ctx = context.WithValue(ctx, ctxKey{}, s)
	return slogx.WithUser(ctx, s.UserID, s.Role.String())
}

func sessionSubject(ctx context.Context) string {
	if s := SessionFromContext(ctx); s != nil {
		return s.UserID
	}
	return ""
}

// authenticate resolves the session cookie, if any. Unknown or expired
// tokens leave the request anonymous and the cookie is cleared; only a
// backend outage fails the request.
func (r *Router) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		token := r.sessions.TokenFromRequest(req)
		if token == "" {
			next.ServeHTTP(w, req)
			return
		}

		sess, err := r.sessions.Resolve(req.Context(), token)
		if errors.Is(err, session.ErrNoSession) {
			http.SetCookie(w, r.sessions.ClearCookie())
			next.ServeHTTP(w, req)
			return
		}
		if err != nil {
			slogx.FromContext(req.Context()).Error("resolve session", "error", err)
			nexusapi.ErrServerError.WriteError(w)
			return
		}

		next.ServeHTTP(w, req.WithContext(contextWithSession(req.Context(), &sess)))
	})
}

// requireSession rejects anonymous requests with 401.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := authz.RequireAuthenticated(SessionFromContext(r.Context())); err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole rejects anonymous requests with 401 and other roles with 403.
func requireRole(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authz.RequireRole(SessionFromContext(r.Context()), roles...); err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireProjectAccess gates on the project named by the path value param.
func (r *Router) requireProjectAccess(param string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess := SessionFromContext(req.Context())
			if err := r.gate.RequireProjectAccess(req.Context(), sess, req.PathValue(param)); err != nil {
				writeError(w, req, err)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
