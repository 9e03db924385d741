package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, password_hash, role, mfa_secret, mfa_enabled, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u       domain.User
		role    string
		secret  sql.NullString
		enabled bool
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &secret, &enabled, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, err
	}

	r, err := domain.ParseRole(role)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %s: %w", u.ID, err)
	}
	u.Role = r
	u.MFASecret = mapNullStringPtr(secret)
	u.MFAEnabled = enabled
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	if !u.Role.Valid() {
		return domain.ErrInvalidRole
	}

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, mfa_secret, mfa_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.Role.String(),
		mapOptionalString(u.MFASecret), u.MFAEnabled, u.CreatedAt, u.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	))
}

func (r *usersRepo) UpdateMFASecret(ctx context.Context, userID string, secret string) error {
	err := requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_secret = ?, updated_at = ? WHERE id = ? AND mfa_enabled = 0`,
		secret, time.Now().UTC(), userID,
	))
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	// Nothing matched: either the user is gone or MFA got enabled meanwhile
	if _, gerr := r.GetUserByID(ctx, userID); gerr != nil {
		return gerr
	}
	return store.ErrConflict
}

func (r *usersRepo) EnableMFA(ctx context.Context, userID string, secret string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_enabled = 1, updated_at = ? WHERE id = ? AND mfa_secret = ?`,
		time.Now().UTC(), userID, secret,
	))
}

func (r *usersRepo) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, role.String()).Scan(&n)
	return n, err
}
