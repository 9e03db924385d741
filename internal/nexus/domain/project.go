package domain

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
)

type Project struct {
	ID          string
	Name        string
	Description string
	Deadline    string
	Status      ProjectStatus
	CreatedAt   time.Time
}

// Assignment links a user to a project. RoleInProject is free text such as
// "Developer" or "Artist" and is unrelated to the account Role.
type Assignment struct {
	ProjectID     string
	UserID        string
	RoleInProject string
	CreatedAt     time.Time
}

// TeamMember is an assignment joined with the assigned user.
type TeamMember struct {
	UserID        string
	Username      string
	Role          Role
	RoleInProject string
}
