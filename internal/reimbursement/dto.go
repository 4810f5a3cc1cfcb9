package reimbursement

import (
	"strings"

	errors "github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type SubmitDTO struct {
	ProjectID int64             `json:"project_id"`
	Amount    validation.Number `json:"amount"`
	Purpose   string            `json:"purpose"`
}

// Validate checks presence first, then parses the amount.
func (d *SubmitDTO) Validate() (decimal.Decimal, *errors.AppError) {
	d.Purpose = strings.TrimSpace(d.Purpose)
	v := validation.NewValidator()
	v.Field("project_id", d.ProjectID).Required()
	v.Field("amount", d.Amount).Required()
	v.Field("purpose", d.Purpose).Required()
	if err := v.Validate(); err != nil {
		return decimal.Zero, err
	}
	return validation.PositiveAmount("amount", d.Amount)
}
