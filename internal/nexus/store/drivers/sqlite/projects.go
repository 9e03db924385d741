package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
)

type projectsRepo struct {
	db dbtx
}

const projectColumns = `p.id, p.name, p.description, p.deadline, p.status, p.created_at`

func scanProject(row interface{ Scan(...any) error }) (domain.Project, error) {
	var (
		p      domain.Project
		status string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Deadline, &status, &p.CreatedAt); err != nil {
		return domain.Project{}, err
	}
	p.Status = domain.ProjectStatus(status)
	return p, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, deadline, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Deadline, string(p.Status), p.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects p ORDER BY p.created_at DESC, p.id DESC`)
}

func (r *projectsRepo) ListProjectsForUser(ctx context.Context, userID string) ([]domain.Project, error) {
	return r.list(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		JOIN project_assignments pa ON pa.project_id = p.id
		WHERE pa.user_id = ?
		ORDER BY p.created_at DESC, p.id DESC`, userID)
}

func (r *projectsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectsRepo) UpdateProjectStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE projects SET status = ? WHERE id = ?`, string(status), id,
	))
}
