package worklog

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type SubmitDTO struct {
	LogDate       string            `json:"log_date"`
	DurationHours validation.Number `json:"duration_hours"`
	Content       string            `json:"content"`
}

func (d *SubmitDTO) Validate() (time.Time, decimal.Decimal, *errors.AppError) {
	d.LogDate = strings.TrimSpace(d.LogDate)
	v := validation.NewValidator()
	v.Field("log_date", d.LogDate).Required()
	v.Field("duration_hours", d.DurationHours).Required()
	v.Field("content", d.Content).Required()
	if err := v.Validate(); err != nil {
		return time.Time{}, decimal.Zero, err
	}

	date, err := validation.ParseDate("log_date", d.LogDate)
	if err != nil {
		return time.Time{}, decimal.Zero, err
	}
	hours, err := validation.WorkHours("duration_hours", d.DurationHours)
	if err != nil {
		return time.Time{}, decimal.Zero, err
	}
	return date, hours, nil
}

// UpdateDTO changes only the fields that are present.
type UpdateDTO struct {
	DurationHours validation.Number `json:"duration_hours"`
	Content       *string           `json:"content"`
}
