package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Role is the coarse permission class of an identity.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleProjectLead
	RoleDeveloper
)

var ErrInvalidRole = errors.New("invalid role")

var roleNames = map[Role]string{
	RoleAdmin:       "Admin",
	RoleProjectLead: "Project Lead",
	RoleDeveloper:   "Developer",
}

// Roles lists every assignable role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleProjectLead, RoleDeveloper}
}

// ParseRole accepts the wire names ("Admin", "Project Lead", "Developer"),
// ignoring case and surrounding whitespace.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for r, name := range roleNames {
		if strings.EqualFold(s, name) {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRole, int(r))
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
