package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;size:50;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null"`
	Email        *string   `gorm:"column:email;size:100;uniqueIndex"`
	Department   *string   `gorm:"column:department;size:100"`
	Role         string    `gorm:"column:role;size:20;not null"`
	Description  *string   `gorm:"column:description;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// WithProjectCount is a user row with the number of projects it belongs to.
type WithProjectCount struct {
	User
	ProjectCount int64 `gorm:"column:project_count"`
}
