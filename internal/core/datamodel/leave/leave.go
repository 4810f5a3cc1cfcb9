package leave

import "time"

type LeaveRequest struct {
	ID          int64      `gorm:"primaryKey"`
	UserID      int64      `gorm:"column:user_id;not null;index"`
	LeaveType   string     `gorm:"column:leave_type;size:50;not null"`
	StartDate   time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate     time.Time  `gorm:"column:end_date;type:date;not null"`
	Reason      string     `gorm:"column:reason;type:text;not null"`
	Status      string     `gorm:"column:status;size:20;not null;index"`
	SubmittedAt time.Time  `gorm:"column:submitted_at;not null"`
	ApprovedBy  *int64     `gorm:"column:approved_by"`
	ApprovedAt  *time.Time `gorm:"column:approved_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type View struct {
	LeaveRequest
	Username         *string `gorm:"column:username"`
	ApproverUsername *string `gorm:"column:approver_username"`
}
