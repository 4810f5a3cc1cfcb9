package session

import "time"

type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Username  string    `gorm:"column:username;size:50;not null"`
	Role      string    `gorm:"column:role;size:20;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (Session) TableName() string {
	return "sessions"
}
