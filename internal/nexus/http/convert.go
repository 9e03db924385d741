package http

import (
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
)

func toUser(u domain.User) nexusapi.User {
	return nexusapi.User{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role.String(),
		MFAEnabled: u.MFAEnabled,
		CreatedAt:  u.CreatedAt,
	}
}

func toProject(p domain.Project) nexusapi.Project {
	return nexusapi.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Deadline:    p.Deadline,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

func toTeamMember(m domain.TeamMember) nexusapi.TeamMember {
	return nexusapi.TeamMember{
		ID:            m.UserID,
		Username:      m.Username,
		Role:          m.Role.String(),
		RoleInProject: m.RoleInProject,
	}
}

// toDocument leaves out the stored blob name.
func toDocument(d domain.Document) nexusapi.Document {
	return nexusapi.Document{
		ID:             d.ID,
		ProjectID:      d.ProjectID,
		OriginalName:   d.OriginalName,
		ContentType:    d.ContentType,
		SizeBytes:      d.SizeBytes,
		UploadedBy:     d.UploadedBy,
		UploadedByName: d.UploaderName,
		UploadedAt:     d.UploadedAt,
	}
}

func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
