package reimbursement

import (
	"time"

	"github.com/shopspring/decimal"
)

type Reimbursement struct {
	ID          int64           `gorm:"primaryKey"`
	ProjectID   int64           `gorm:"column:project_id;not null;index"`
	UserID      int64           `gorm:"column:user_id;not null;index"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	Purpose     string          `gorm:"column:purpose;type:text;not null"`
	Status      string          `gorm:"column:status;size:20;not null;index"`
	SubmittedAt time.Time       `gorm:"column:submitted_at;not null"`
	ApprovedBy  *int64          `gorm:"column:approved_by"`
	ApprovedAt  *time.Time      `gorm:"column:approved_at"`
}

func (Reimbursement) TableName() string {
	return "reimbursements"
}

// View is a reimbursement joined with the names the list endpoints show.
type View struct {
	Reimbursement
	ProjectName      *string `gorm:"column:project_name"`
	Username         *string `gorm:"column:username"`
	ApproverUsername *string `gorm:"column:approver_username"`
}
