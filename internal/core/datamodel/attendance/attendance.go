package attendance

import "time"

// AttendanceRecord keeps check stamps as HH:MM:SS strings.
type AttendanceRecord struct {
	ID       int64     `gorm:"primaryKey"`
	UserID   int64     `gorm:"column:user_id;not null;uniqueIndex:idx_attendance_user_date"`
	Date     time.Time `gorm:"column:date;type:date;not null;uniqueIndex:idx_attendance_user_date"`
	CheckIn  *string   `gorm:"column:check_in;size:8"`
	CheckOut *string   `gorm:"column:check_out;size:8"`
	Note     *string   `gorm:"column:note;type:text"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
