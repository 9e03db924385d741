package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/nexus/internal/nexus/authz"
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/session"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
	"github.com/aussiebroadwan/nexus/pkg/totpx"
)

// AuthService runs the login protocol: password, then TOTP when the identity
// has MFA enabled, then session issue. Nothing is remembered between calls, so
// a client answering an MFA challenge sends the password again with the code.
type AuthService struct {
	Store    store.Store
	Sessions *session.Manager
	TOTP     *totpx.Engine
}

type LoginRequest struct {
	Username string
	Password string
	Token    string // TOTP code, only needed when MFA is enabled
}

// LoginResult is either an MFA challenge (MFARequired set, nothing else) or an
// issued session.
type LoginResult struct {
	MFARequired bool
	Token       string
	Session     domain.Session
	Identity    domain.Identity
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	log := slogx.FromContext(ctx)
	username := strings.TrimSpace(req.Username)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		cryptox.BurnVerify(req.Password)
		log.Info("login rejected", "reason", "unknown_user")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("load user: %w", err)
	}

	if !cryptox.PasswordMatches(req.Password, user.PasswordHash) {
		log.Info("login rejected", "reason", "bad_password", "user_id", user.ID)
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.MFAEnabled {
		code := strings.TrimSpace(req.Token)
		if code == "" {
			return LoginResult{MFARequired: true}, nil
		}
		if user.MFASecret == nil || !s.TOTP.Verify(*user.MFASecret, code) {
			log.Info("login rejected", "reason", "bad_mfa_token", "user_id", user.ID)
			return LoginResult{}, ErrInvalidMFAToken
		}
	}

	id := user.Identity()
	token, sess, err := s.Sessions.Issue(ctx, id)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue session: %w", err)
	}

	log.Info("login succeeded", "user_id", user.ID, "mfa", user.MFAEnabled)
	return LoginResult{Token: token, Session: sess, Identity: id}, nil
}

// Logout destroys the session behind token. It never fails from the caller's
// point of view; backend errors are only logged.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if err := s.Sessions.Destroy(ctx, token); err != nil {
		slogx.FromContext(ctx).Warn("logout: destroy session", "error", err)
	}
}

// WhoAmI reloads the identity behind sess so mfa_enabled is current.
func (s *AuthService) WhoAmI(ctx context.Context, sess *domain.Session) (domain.Identity, error) {
	if err := authz.RequireAuthenticated(sess); err != nil {
		return domain.Identity{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, authz.ErrUnauthenticated
	}
	if err != nil {
		return domain.Identity{}, err
	}
	return user.Identity(), nil
}

// ChangePassword replaces the password hash after checking current. Existing
// sessions stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, sess *domain.Session, current, next string) error {
	if err := authz.RequireAuthenticated(sess); err != nil {
		return err
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return authz.ErrUnauthenticated
	}
	if err != nil {
		return err
	}

	if !cryptox.PasswordMatches(current, user.PasswordHash) {
		return ErrPasswordMismatch
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed", "user_id", user.ID)
	return nil
}
