package notice

import "time"

type Notice struct {
	ID        int64     `gorm:"primaryKey"`
	Title     string    `gorm:"column:title;size:200;not null"`
	Content   string    `gorm:"column:content;type:text;not null"`
	CreatedBy int64     `gorm:"column:created_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
}

func (Notice) TableName() string {
	return "notices"
}

// View is a notice joined with its author's username.
type View struct {
	Notice
	CreatorUsername *string `gorm:"column:creator_username"`
}
