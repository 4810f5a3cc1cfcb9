package user

import (
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/enterprise-admin/internal/project"
)

// Profile is a user as shown to itself or an admin, with its projects.
type Profile struct {
	ID          int64                        `json:"id"`
	Username    string                       `json:"username"`
	Email       *string                      `json:"email"`
	Department  *string                      `json:"department"`
	Role        string                       `json:"role"`
	Description *string                      `json:"description"`
	CreatedAt   string                       `json:"created_at"`
	Projects    []project.MembershipResponse `json:"projects"`
}

type ListItem struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Email        *string `json:"email"`
	Department   *string `json:"department"`
	Role         string  `json:"role"`
	CreatedAt    string  `json:"created_at"`
	ProjectCount int64   `json:"project_count"`
}

func profileFromDataModel(u *userDatamodel.User, projects []project.MembershipResponse) *Profile {
	if projects == nil {
		projects = []project.MembershipResponse{}
	}
	return &Profile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Department:  u.Department,
		Role:        u.Role,
		Description: u.Description,
		CreatedAt:   validation.FormatTimestamp(u.CreatedAt),
		Projects:    projects,
	}
}

func listItemFromDataModel(u userDatamodel.WithProjectCount) ListItem {
	return ListItem{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Department:   u.Department,
		Role:         u.Role,
		CreatedAt:    validation.FormatTimestamp(u.CreatedAt),
		ProjectCount: u.ProjectCount,
	}
}
