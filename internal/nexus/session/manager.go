// Package session issues and resolves the opaque server side sessions behind
// the portal's session cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
)

const (
	DefaultTTL        = 24 * time.Hour
	DefaultCookieName = "nexus_sid"

	keyPrefix = "sid:"
)

// Manager owns the session lifecycle. Expiry is absolute: a session dies TTL
// after issue no matter how active it is.
type Manager struct {
	Backend Backend
	TTL     time.Duration
	Now     func() time.Time

	CookieName     string
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
}

func NewManager(backend Backend, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		Backend:        backend,
		TTL:            ttl,
		Now:            time.Now,
		CookieName:     DefaultCookieName,
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) now() time.Time {
	if m.Now == nil {
		return time.Now().UTC()
	}
	return m.Now().UTC()
}

func storageKey(token string) string {
	return keyPrefix + cryptox.FingerprintToken(token)
}

// Issue creates a session for id and returns the token to hand to the
// client. Each call creates a distinct session.
func (m *Manager) Issue(ctx context.Context, id domain.Identity) (string, domain.Session, error) {
	if id.ID == "" || !id.Role.Valid() {
		return "", domain.Session{}, fmt.Errorf("session: incomplete identity")
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Session{}, err
	}

	now := m.now()
	sess := domain.Session{
		ID:        cryptox.FingerprintToken(token),
		UserID:    id.ID,
		Username:  id.Username,
		Role:      id.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.TTL),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("session: encode: %w", err)
	}

	if err := m.Backend.Set(ctx, storageKey(token), payload, m.TTL); err != nil {
		return "", domain.Session{}, fmt.Errorf("session: store: %w", err)
	}
	return token, sess, nil
}

// Resolve looks up token. Any failure to produce a live session, other than
// a backend outage, is ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Session{}, ErrNoSession
	}

	key := storageKey(token)
	payload, err := m.Backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return domain.Session{}, ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("session: load: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil || !sess.Role.Valid() || sess.UserID == "" {
		_ = m.Backend.Delete(ctx, key)
		return domain.Session{}, ErrNoSession
	}

	if sess.Expired(m.now()) {
		_ = m.Backend.Delete(ctx, key)
		return domain.Session{}, ErrNoSession
	}
	return sess, nil
}

// Destroy removes the session behind token. Unknown or empty tokens are fine.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := m.Backend.Delete(ctx, storageKey(token)); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// Purge asks the backend to drop expired entries.
func (m *Manager) Purge(ctx context.Context) (int, error) {
	return m.Backend.Purge(ctx)
}

// Cookie builds the session cookie for token.
func (m *Manager) Cookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.CookieName,
		Value:    token,
		Path:     m.CookiePath,
		Expires:  expiresAt,
		MaxAge:   max(int(expiresAt.Sub(m.now()).Seconds()), 1),
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: m.CookieSameSite,
	}
}

// ClearCookie builds a cookie that makes the browser drop the session.
func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.CookieName,
		Value:    "",
		Path:     m.CookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: m.CookieSameSite,
	}
}

// TokenFromRequest returns the session cookie value, or "".
func (m *Manager) TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(m.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// ParseSameSite maps a config string to http.SameSite, defaulting to Lax.
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
