package domain

import "time"

// User is a stored identity. PasswordHash and MFASecret never leave the
// service layer; callers outside it get an Identity.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	MFASecret    *string
	MFAEnabled   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the public projection of a User.
type Identity struct {
	ID         string
	Username   string
	Role       Role
	MFAEnabled bool
}

func (u User) Identity() Identity {
	return Identity{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		MFAEnabled: u.MFAEnabled,
	}
}

// HasPendingMFA reports a generated but unconfirmed secret.
func (u User) HasPendingMFA() bool {
	return !u.MFAEnabled && u.MFASecret != nil && *u.MFASecret != ""
}
