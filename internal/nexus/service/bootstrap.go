package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// DefaultAdminPassword is the seeded password when none is configured.
// Operators are expected to change it on first login.
const DefaultAdminPassword = "Admin123!"

// BootstrapService seeds the first Admin so a fresh database is usable.
type BootstrapService struct {
	Users    *UserService
	Username string
	Password string
}

// EnsureAdmin creates the configured Admin when no Admin exists yet and
// reports whether it did.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) (bool, error) {
	l := slogx.FromContext(ctx)

	n, err := s.Users.Store.Users().CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	user, err := s.Users.Create(ctx, s.Username, s.Password, domain.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	l.Info("seeded admin user", "user_id", user.ID, "username", user.Username)
	if s.Password == DefaultAdminPassword {
		l.Warn("admin user uses the default password, change it now")
	}
	return true, nil
}
