package project

import (
	"strings"

	errors "github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
)

type CreateProjectDTO struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
}

func (d *CreateProjectDTO) Validate() *errors.AppError {
	d.Name = strings.TrimSpace(d.Name)
	return validation.Struct(d)
}

type AddMemberDTO struct {
	UserID int64  `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required,max=50"`
}

func (d *AddMemberDTO) Validate() *errors.AppError {
	d.Role = strings.TrimSpace(d.Role)
	return validation.Struct(d)
}
