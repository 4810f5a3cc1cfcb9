package notice

import (
	"strings"

	errors "github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
)

type PublishDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (d *PublishDTO) Validate() *errors.AppError {
	d.Title = strings.TrimSpace(d.Title)
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(200)
	v.Field("content", d.Content).Required()
	return v.Validate()
}
