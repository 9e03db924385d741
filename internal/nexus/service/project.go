package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/idx"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

type ProjectService struct {
	Store store.Store
}

func (s *ProjectService) Create(ctx context.Context, name, description, deadline string) (domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Project{}, fmt.Errorf("%w: name is required", ErrInvalidProject)
	}

	p := domain.Project{
		ID:          idx.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Deadline:    strings.TrimSpace(deadline),
		Status:      domain.ProjectActive,
	}
	if err := s.Store.Projects().CreateProject(ctx, p); err != nil {
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}

	slogx.FromContext(ctx).Info("project created", "project_id", p.ID)
	return s.Store.Projects().GetProjectByID(ctx, p.ID)
}

// ListFor returns every project to Admins and only assigned projects to
// everyone else.
func (s *ProjectService) ListFor(ctx context.Context, sess *domain.Session) ([]domain.Project, error) {
	if sess.IsAdmin() {
		return s.Store.Projects().ListProjects(ctx)
	}
	return s.Store.Projects().ListProjectsForUser(ctx, sess.UserID)
}

func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	return s.Store.Projects().GetProjectByID(ctx, id)
}

// Complete marks a project Completed. Completing twice is harmless.
func (s *ProjectService) Complete(ctx context.Context, id string) error {
	if err := s.Store.Projects().UpdateProjectStatus(ctx, id, domain.ProjectCompleted); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("project completed", "project_id", id)
	return nil
}

// Assign links userID to projectID. Unknown project or user is
// store.ErrNotFound; an existing link is ErrAlreadyAssigned.
func (s *ProjectService) Assign(ctx context.Context, projectID, userID, roleInProject string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user is required", ErrInvalidProject)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Projects().GetProjectByID(ctx, projectID); err != nil {
			return err
		}
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			return err
		}
		return tx.Assignments().CreateAssignment(ctx, domain.Assignment{
			ProjectID:     projectID,
			UserID:        userID,
			RoleInProject: strings.TrimSpace(roleInProject),
		})
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrAlreadyAssigned
	}
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user assigned to project", "project_id", projectID, "assignee_id", userID)
	return nil
}

// Team lists the members of an existing project.
func (s *ProjectService) Team(ctx context.Context, projectID string) ([]domain.TeamMember, error) {
	if _, err := s.Store.Projects().GetProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Store.Assignments().ListTeam(ctx, projectID)
}
