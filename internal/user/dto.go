package user

import (
	"strings"

	errors "github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
)

// UpdateProfileDTO is a partial update; nil or blank fields are left alone.
type UpdateProfileDTO struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Department  *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

func (d *UpdateProfileDTO) Validate() *errors.AppError {
	d.Email = blankToNil(d.Email)
	d.Department = blankToNil(d.Department)
	d.Description = blankToNil(d.Description)
	return validation.Struct(d)
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

func (d ChangePasswordDTO) Validate() *errors.AppError {
	return validation.Struct(d)
}

// AdminUpdateDTO is a partial update of another user's account.
type AdminUpdateDTO struct {
	Username   *string `json:"username,omitempty" validate:"omitempty,max=50"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Role       *string `json:"role,omitempty"`
}

func (d *AdminUpdateDTO) Validate() *errors.AppError {
	d.Username = blankToNil(d.Username)
	d.Email = blankToNil(d.Email)
	d.Department = blankToNil(d.Department)
	d.Role = blankToNil(d.Role)
	return validation.Struct(d)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
