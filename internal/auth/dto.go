package auth

import (
	"strings"

	errors "github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
)

type RegisterDTO struct {
	Username   string  `json:"username" validate:"required,max=50"`
	Password   string  `json:"password" validate:"required,password"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
}

func (d *RegisterDTO) Normalize() {
	d.Username = strings.TrimSpace(d.Username)
	if d.Email != nil && strings.TrimSpace(*d.Email) == "" {
		d.Email = nil
	}
	if d.Department != nil && strings.TrimSpace(*d.Department) == "" {
		d.Department = nil
	}
}

func (d RegisterDTO) Validate() *errors.AppError {
	return validation.Struct(d)
}

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (d LoginDTO) Validate() *errors.AppError {
	return validation.Struct(d)
}
