package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrConflict      = errors.New("store: conflicting state")
)

// Store is the root data access interface. Drivers implement it and expose
// one sub-repository per table group, which keeps transactions from nesting.
type Store interface {
	Users() Users
	Projects() Projects
	Assignments() Assignments
	Documents() Documents

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit or
	// Rollback on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername matches case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user. A taken username gives ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users ordered by username.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateMFASecret stores a pending secret. It only touches rows with MFA
	// still disabled: an enabled user gives ErrConflict, a missing one
	// ErrNotFound.
	UpdateMFASecret(ctx context.Context, userID string, secret string) error

	// EnableMFA sets mfa_enabled, but only while the stored secret is still
	// secret. ErrNotFound when it was replaced or never set.
	EnableMFA(ctx context.Context, userID string, secret string) error

	// CountByRole reports how many users hold role.
	CountByRole(ctx context.Context, role domain.Role) (int, error)
}

type Projects interface {
	CreateProject(ctx context.Context, p domain.Project) error
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// ListProjects returns every project, newest first.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// ListProjectsForUser returns projects the user is assigned to, newest first.
	ListProjectsForUser(ctx context.Context, userID string) ([]domain.Project, error)

	// UpdateProjectStatus returns ErrNotFound for an unknown project.
	UpdateProjectStatus(ctx context.Context, id string, status domain.ProjectStatus) error
}

type Assignments interface {
	// CreateAssignment returns ErrAlreadyExists for a duplicate pair and
	// ErrNotFound when the project or user does not exist.
	CreateAssignment(ctx context.Context, a domain.Assignment) error

	// IsAssigned reports whether userID is linked to projectID.
	IsAssigned(ctx context.Context, projectID, userID string) (bool, error)

	// ListTeam returns the members of a project ordered by username.
	ListTeam(ctx context.Context, projectID string) ([]domain.TeamMember, error)
}

type Documents interface {
	CreateDocument(ctx context.Context, d domain.Document) error
	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)

	// ListDocuments returns the documents of a project, newest first, with
	// UploaderName filled in.
	ListDocuments(ctx context.Context, projectID string) ([]domain.Document, error)
}
