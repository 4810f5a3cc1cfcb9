package worklog

import (
	"time"

	"github.com/shopspring/decimal"
)

type WorkLog struct {
	ID            int64           `gorm:"primaryKey"`
	UserID        int64           `gorm:"column:user_id;not null;uniqueIndex:idx_work_logs_user_date"`
	LogDate       time.Time       `gorm:"column:log_date;type:date;not null;uniqueIndex:idx_work_logs_user_date"`
	DurationHours decimal.Decimal `gorm:"column:duration_hours;type:numeric(4,2);not null"`
	Content       string          `gorm:"column:content;type:text;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null"`
}

func (WorkLog) TableName() string {
	return "work_logs"
}

type View struct {
	WorkLog
	Username *string `gorm:"column:username"`
}

// UserStat is one row of the per-user aggregation.
type UserStat struct {
	UserID     int64           `db:"user_id"`
	Username   string          `db:"username"`
	TotalHours decimal.Decimal `db:"total_hours"`
	LogCount   int64           `db:"log_count"`
}
