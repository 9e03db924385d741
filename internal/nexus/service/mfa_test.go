package service

import (
	"context"
	"strings"
	"testing"

	"github.com/aussiebroadwan/nexus/internal/nexus/authz"
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/stretchr/testify/require"
)

func TestMFASetup_StoresPendingSecret(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.createUser(t, "dev", "Dev123!", domain.RoleDeveloper)
	sess, _ := e.login(t, "dev", "Dev123!")

	setup, err := e.mfa.Setup(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, setup.Secret)
	require.True(t, strings.HasPrefix(setup.URI, "otpauth://totp/"))
	require.True(t, strings.HasPrefix(setup.QRCode, "data:image/png;base64,"))

	stored, err := e.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, setup.Secret, *stored.MFASecret)
	require.False(t, stored.MFAEnabled, "setup alone never enables MFA")
}

func TestMFASetup_OverwritesPendingSecret(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.createUser(t, "dev", "Dev123!", domain.RoleDeveloper)
	sess, _ := e.login(t, "dev", "Dev123!")

	first, err := e.mfa.Setup(ctx, sess)
	require.NoError(t, err)
	second, err := e.mfa.Setup(ctx, sess)
	require.NoError(t, err)
	require.NotEqual(t, first.Secret, second.Secret)

	// Only the latest secret can confirm enrollment
	oldCode, err := e.totp.CurrentCode(first.Secret)
	require.NoError(t, err)
	require.ErrorIs(t, e.mfa.Verify(ctx, sess, oldCode), ErrInvalidMFAToken)

	newCode, err := e.totp.CurrentCode(second.Secret)
	require.NoError(t, err)
	require.NoError(t, e.mfa.Verify(ctx, sess, newCode))
}

func TestMFAVerify(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.createUser(t, "dev", "Dev123!", domain.RoleDeveloper)
	sess, _ := e.login(t, "dev", "Dev123!")

	// Nothing to verify against yet
	require.ErrorIs(t, e.mfa.Verify(ctx, sess, "123456"), ErrInvalidMFAToken)

	setup, err := e.mfa.Setup(ctx, sess)
	require.NoError(t, err)

	for _, bad := range []string{"", "abcdef", "12345", "000000"} {
		require.ErrorIs(t, e.mfa.Verify(ctx, sess, bad), ErrInvalidMFAToken, bad)
	}
	stored, err := e.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, stored.MFAEnabled, "failed verify leaves MFA disabled")

	code, err := e.totp.CurrentCode(setup.Secret)
	require.NoError(t, err)
	require.NoError(t, e.mfa.Verify(ctx, sess, code))
	// Same code again is accepted; enabling is idempotent
	require.NoError(t, e.mfa.Verify(ctx, sess, code))

	stored, err = e.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, stored.MFAEnabled)
	require.NotNil(t, stored.MFASecret)

	_, err = e.mfa.Setup(ctx, sess)
	require.ErrorIs(t, err, ErrMFAAlreadyEnabled)
}

func TestMFA_RequiresSession(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.mfa.Setup(ctx, nil)
	require.ErrorIs(t, err, authz.ErrUnauthenticated)
	require.ErrorIs(t, e.mfa.Verify(ctx, nil, "123456"), authz.ErrUnauthenticated)
}

// racingStore runs a hook right before the MFA writes, standing in for a
// request that lands between the service's read and its write.
type racingStore struct {
	store.Store
	beforeSecret func()
	beforeEnable func()
}

func (s *racingStore) Users() store.Users {
	return &racingUsers{Users: s.Store.Users(), s: s}
}

type racingUsers struct {
	store.Users
	s *racingStore
}

func (u *racingUsers) UpdateMFASecret(ctx context.Context, userID, secret string) error {
	if hook := u.s.beforeSecret; hook != nil {
		u.s.beforeSecret = nil
		hook()
	}
	return u.Users.UpdateMFASecret(ctx, userID, secret)
}

func (u *racingUsers) EnableMFA(ctx context.Context, userID, secret string) error {
	if hook := u.s.beforeEnable; hook != nil {
		u.s.beforeEnable = nil
		hook()
	}
	return u.Users.EnableMFA(ctx, userID, secret)
}

func TestMFASetup_LosesToConcurrentVerify(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.createUser(t, "dev", "Dev123!", domain.RoleDeveloper)
	sess, _ := e.login(t, "dev", "Dev123!")

	confirmed, err := e.mfa.Setup(ctx, sess)
	require.NoError(t, err)
	code, err := e.totp.CurrentCode(confirmed.Secret)
	require.NoError(t, err)

	rs := &racingStore{Store: e.store}
	rs.beforeSecret = func() { require.NoError(t, e.mfa.Verify(ctx, sess, code)) }
	racing := &MFAService{Store: rs, TOTP: e.totp, QRSize: 128}

	_, err = racing.Setup(ctx, sess)
	require.ErrorIs(t, err, ErrMFAAlreadyEnabled)

	stored, err := e.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, stored.MFAEnabled)
	require.Equal(t, confirmed.Secret, *stored.MFASecret, "enabled secret is never replaced")
}

func TestMFAVerify_StaleSecretDoesNotEnable(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.createUser(t, "dev", "Dev123!", domain.RoleDeveloper)
	sess, _ := e.login(t, "dev", "Dev123!")

	first, err := e.mfa.Setup(ctx, sess)
	require.NoError(t, err)
	code, err := e.totp.CurrentCode(first.Secret)
	require.NoError(t, err)

	var second MFASetup
	rs := &racingStore{Store: e.store}
	rs.beforeEnable = func() {
		var err error
		second, err = e.mfa.Setup(ctx, sess)
		require.NoError(t, err)
	}
	racing := &MFAService{Store: rs, TOTP: e.totp, QRSize: 128}

	require.ErrorIs(t, racing.Verify(ctx, sess, code), ErrInvalidMFAToken)

	stored, err := e.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, stored.MFAEnabled)
	require.Equal(t, second.Secret, *stored.MFASecret)
}
