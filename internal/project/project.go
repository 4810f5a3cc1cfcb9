package project

import (
	"time"

	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	projectDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/project"
)

type Project struct {
	ID          int64     `json:"project_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"-"`
}

// MembershipResponse is one project a user belongs to, with the role held.
type MembershipResponse struct {
	ProjectID          int64   `json:"project_id"`
	ProjectName        string  `json:"project_name"`
	ProjectDescription *string `json:"project_description"`
	Role               string  `json:"role"`
	ProjectCreatorID   int64   `json:"project_creator_id"`
	ProjectCreatedAt   string  `json:"project_created_at"`
}

type MemberResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type DetailResponse struct {
	ProjectID   int64            `json:"project_id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	CreatedBy   int64            `json:"created_by"`
	CreatedAt   string           `json:"created_at"`
	Members     []MemberResponse `json:"members"`
}

func FromDataModel(p *projectDatamodel.Project) *Project {
	return &Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func membershipFromDataModel(m projectDatamodel.Membership) MembershipResponse {
	return MembershipResponse{
		ProjectID:          m.ProjectID,
		ProjectName:        m.ProjectName,
		ProjectDescription: m.ProjectDescription,
		Role:               m.Role,
		ProjectCreatorID:   m.ProjectCreatorID,
		ProjectCreatedAt:   validation.FormatTimestamp(m.ProjectCreatedAt),
	}
}

func detailResponse(p *Project, members []projectDatamodel.MemberDetail) DetailResponse {
	out := DetailResponse{
		ProjectID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   validation.FormatTimestamp(p.CreatedAt),
		Members:     make([]MemberResponse, 0, len(members)),
	}
	for _, m := range members {
		out.Members = append(out.Members, MemberResponse{UserID: m.UserID, Username: m.Username, Role: m.Role})
	}
	return out
}
