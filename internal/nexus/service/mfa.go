package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/nexus/internal/nexus/authz"
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
	"github.com/aussiebroadwan/nexus/pkg/totpx"
)

// MFAService drives TOTP enrollment: Setup stores a pending secret, Verify
// confirms it and flips mfa_enabled. Concurrent Setup calls race and the last
// write wins.
type MFAService struct {
	Store  store.Store
	TOTP   *totpx.Engine
	QRSize int
}

type MFASetup struct {
	Secret string
	URI    string
	QRCode string // data:image/png;base64 URL
}

// Setup generates a new secret for the session's user, replacing any pending
// one. Users who already have MFA enabled get ErrMFAAlreadyEnabled.
func (s *MFAService) Setup(ctx context.Context, sess *domain.Session) (MFASetup, error) {
	if err := authz.RequireAuthenticated(sess); err != nil {
		return MFASetup{}, err
	}

	user, err := s.loadUser(ctx, sess)
	if err != nil {
		return MFASetup{}, err
	}
	if user.MFAEnabled {
		return MFASetup{}, ErrMFAAlreadyEnabled
	}

	enr, err := s.TOTP.GenerateSecret(user.Username)
	if err != nil {
		return MFASetup{}, err
	}

	qr, err := totpx.QRCodeDataURL(enr.URI, s.QRSize)
	if err != nil {
		return MFASetup{}, err
	}

	err = s.Store.Users().UpdateMFASecret(ctx, user.ID, enr.Secret)
	if errors.Is(err, store.ErrConflict) {
		return MFASetup{}, ErrMFAAlreadyEnabled
	}
	if err != nil {
		return MFASetup{}, fmt.Errorf("store MFA secret: %w", err)
	}

	slogx.FromContext(ctx).Info("mfa secret generated", "user_id", user.ID, "replaced_pending", user.HasPendingMFA())
	return MFASetup{Secret: enr.Secret, URI: enr.URI, QRCode: qr}, nil
}

// Verify checks code against the stored secret and enables MFA. Verifying
// again once enabled succeeds without changing anything.
func (s *MFAService) Verify(ctx context.Context, sess *domain.Session, code string) error {
	if err := authz.RequireAuthenticated(sess); err != nil {
		return err
	}

	user, err := s.loadUser(ctx, sess)
	if err != nil {
		return err
	}
	if user.MFASecret == nil || *user.MFASecret == "" {
		return ErrInvalidMFAToken
	}
	if !s.TOTP.Verify(*user.MFASecret, code) {
		return ErrInvalidMFAToken
	}
	if user.MFAEnabled {
		return nil
	}

	// A Setup racing this call may have replaced the secret the code matched
	err = s.Store.Users().EnableMFA(ctx, user.ID, *user.MFASecret)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidMFAToken
	}
	if err != nil {
		return fmt.Errorf("enable MFA: %w", err)
	}

	slogx.FromContext(ctx).Info("mfa enabled", "user_id", user.ID)
	return nil
}

func (s *MFAService) loadUser(ctx context.Context, sess *domain.Session) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, authz.ErrUnauthenticated
	}
	return user, err
}
