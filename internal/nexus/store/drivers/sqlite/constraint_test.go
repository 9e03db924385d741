package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/stretchr/testify/require"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func TestMapConstraint(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role) VALUES ('u1', 'dev', 'h', 'Developer')`)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO projects (id, name) VALUES ('p1', 'Skyline')`)
	require.NoError(t, err)

	tests := []struct {
		name string
		sql  string
		code int
		want error
	}{
		{
			name: "unique",
			sql:  `INSERT INTO users (id, username, password_hash, role) VALUES ('u2', 'DEV', 'h', 'Developer')`,
			code: sqlite3.SQLITE_CONSTRAINT_UNIQUE,
			want: store.ErrAlreadyExists,
		},
		{
			name: "primary key",
			sql:  `INSERT INTO projects (id, name) VALUES ('p1', 'Again')`,
			code: sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
			want: store.ErrAlreadyExists,
		},
		{
			name: "foreign key",
			sql:  `INSERT INTO project_assignments (project_id, user_id) VALUES ('ghost', 'u1')`,
			code: sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
			want: store.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, raw := s.db.ExecContext(ctx, tt.sql)

			var se *msqlite.Error
			require.ErrorAs(t, raw, &se)
			require.Equal(t, tt.code, se.Code())

			require.ErrorIs(t, mapConstraint(raw), tt.want)
			require.ErrorIs(t, mapConstraint(fmt.Errorf("wrapped: %w", raw)), tt.want)
		})
	}

	t.Run("other constraints pass through", func(t *testing.T) {
		_, raw := s.db.ExecContext(ctx, `INSERT INTO projects (id, name) VALUES ('p2', NULL)`)

		var se *msqlite.Error
		require.ErrorAs(t, raw, &se)
		require.Equal(t, sqlite3.SQLITE_CONSTRAINT_NOTNULL, se.Code())
		require.Same(t, raw, mapConstraint(raw))
	})

	t.Run("message text alone is not a constraint", func(t *testing.T) {
		plain := errors.New("UNIQUE constraint failed: users.username")
		require.Same(t, plain, mapConstraint(plain))
	})

	t.Run("nil", func(t *testing.T) {
		require.NoError(t, mapConstraint(nil))
	})
}
