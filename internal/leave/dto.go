package leave

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
)

type SubmitDTO struct {
	LeaveType string `json:"leave_type" validate:"required,max=50"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

// Period is a validated, inclusive leave range.
type Period struct {
	Start time.Time
	End   time.Time
}

func (d *SubmitDTO) Validate() (*Period, *errors.AppError) {
	d.LeaveType = strings.TrimSpace(d.LeaveType)
	d.Reason = strings.TrimSpace(d.Reason)
	if err := validation.Struct(d); err != nil {
		return nil, err
	}

	start, err := validation.ParseDate("start_date", strings.TrimSpace(d.StartDate))
	if err != nil {
		return nil, err
	}
	end, err := validation.ParseDate("end_date", strings.TrimSpace(d.EndDate))
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, errors.NewValidationFieldError("end_date",
			"end date cannot be earlier than start date", errors.ErrCodeInvalidDateRange)
	}
	return &Period{Start: start, End: end}, nil
}
