package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
)

type assignmentsRepo struct {
	db dbtx
}

func (r *assignmentsRepo) CreateAssignment(ctx context.Context, a domain.Assignment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO project_assignments (project_id, user_id, role_in_project, created_at)
		VALUES (?, ?, ?, ?)`,
		a.ProjectID, a.UserID, a.RoleInProject, a.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *assignmentsRepo) IsAssigned(ctx context.Context, projectID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM project_assignments WHERE project_id = ? AND user_id = ?
		)`, projectID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *assignmentsRepo) ListTeam(ctx context.Context, projectID string) ([]domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.role, pa.role_in_project
		FROM project_assignments pa
		JOIN users u ON u.id = pa.user_id
		WHERE pa.project_id = ?
		ORDER BY u.username`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var team []domain.TeamMember
	for rows.Next() {
		var (
			m    domain.TeamMember
			role string
		)
		if err := rows.Scan(&m.UserID, &m.Username, &role, &m.RoleInProject); err != nil {
			return nil, err
		}
		if m.Role, err = domain.ParseRole(role); err != nil {
			return nil, err
		}
		team = append(team, m)
	}
	return team, rows.Err()
}
