// Package authz is the authorization gate every protected operation passes
// through. Checks compose in a fixed order: authenticated, then role, then
// project access. The first failure wins.
package authz

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
)

// AssignmentChecker answers whether a user is linked to a project.
type AssignmentChecker interface {
	IsAssigned(ctx context.Context, projectID, userID string) (bool, error)
}

// RequireAuthenticated fails when no live session is present.
func RequireAuthenticated(sess *domain.Session) error {
	if sess == nil || sess.UserID == "" {
		return ErrUnauthenticated
	}
	return nil
}

// RequireRole fails with ErrForbidden when the session role is not one of
// allowed. A missing session is still ErrUnauthenticated.
func RequireRole(sess *domain.Session, allowed ...domain.Role) error {
	if err := RequireAuthenticated(sess); err != nil {
		return err
	}
	if !slices.Contains(allowed, sess.Role) {
		return fmt.Errorf("%w: role %s", ErrForbidden, sess.Role)
	}
	return nil
}

// Gate performs project scoped checks against the assignment table.
type Gate struct {
	Assignments AssignmentChecker
}

// RequireProjectAccess lets Admins through unconditionally and everyone else
// only when assigned to projectID.
func (g *Gate) RequireProjectAccess(ctx context.Context, sess *domain.Session, projectID string) error {
	if err := RequireAuthenticated(sess); err != nil {
		return err
	}
	if sess.IsAdmin() {
		return nil
	}

	ok, err := g.Assignments.IsAssigned(ctx, projectID, sess.UserID)
	if err != nil {
		return fmt.Errorf("check assignment: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: not assigned to project", ErrForbidden)
	}
	return nil
}

// Check runs the whole pipeline: authentication, then role when roles is
// non-empty, then project access when projectID is non-empty.
func (g *Gate) Check(ctx context.Context, sess *domain.Session, projectID string, roles ...domain.Role) error {
	if err := RequireAuthenticated(sess); err != nil {
		return err
	}
	if len(roles) > 0 {
		if err := RequireRole(sess, roles...); err != nil {
			return err
		}
	}
	if projectID != "" {
		return g.RequireProjectAccess(ctx, sess, projectID)
	}
	return nil
}
