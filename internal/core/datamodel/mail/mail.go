package mail

import "time"

type Mail struct {
	ID         int64     `gorm:"primaryKey"`
	SenderID   int64     `gorm:"column:sender_id;not null;index"`
	ReceiverID int64     `gorm:"column:receiver_id;not null;index"`
	Subject    string    `gorm:"column:subject;size:200;not null"`
	Content    string    `gorm:"column:content;type:text;not null"`
	IsRead     bool      `gorm:"column:is_read;not null"`
	IsReply    bool      `gorm:"column:is_reply;not null"`
	SentAt     time.Time `gorm:"column:sent_at;not null"`
}

func (Mail) TableName() string {
	return "mails"
}

// View is a mail row joined with the username of the other party.
type View struct {
	Mail
	CounterpartUsername *string `gorm:"column:counterpart_username"`
}
