package mail

import (
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	mailDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/mail"
)

const (
	replyPrefix     = "Re: "
	unknownUsername = "unknown"
)

type InboxItem struct {
	MailID         int64  `json:"mail_id"`
	SenderID       int64  `json:"sender_id"`
	SenderUsername string `json:"sender_username"`
	Subject        string `json:"subject"`
	Content        string `json:"content"`
	IsRead         bool   `json:"is_read"`
	IsReply        bool   `json:"is_reply"`
	SentAt         string `json:"sent_at"`
}

type SentItem struct {
	MailID           int64  `json:"mail_id"`
	ReceiverID       int64  `json:"receiver_id"`
	ReceiverUsername string `json:"receiver_username"`
	Subject          string `json:"subject"`
	Content          string `json:"content"`
	IsRead           bool   `json:"is_read"`
	IsReply          bool   `json:"is_reply"`
	SentAt           string `json:"sent_at"`
}

func counterpart(v mailDatamodel.View) string {
	if v.CounterpartUsername == nil {
		return unknownUsername
	}
	return *v.CounterpartUsername
}

func toInboxItem(v mailDatamodel.View) InboxItem {
	return InboxItem{
		MailID:         v.ID,
		SenderID:       v.SenderID,
		SenderUsername: counterpart(v),
		Subject:        v.Subject,
		Content:        v.Content,
		IsRead:         v.IsRead,
		IsReply:        v.IsReply,
		SentAt:         validation.FormatTimestamp(v.SentAt),
	}
}

func toSentItem(v mailDatamodel.View) SentItem {
	return SentItem{
		MailID:           v.ID,
		ReceiverID:       v.ReceiverID,
		ReceiverUsername: counterpart(v),
		Subject:          v.Subject,
		Content:          v.Content,
		IsRead:           v.IsRead,
		IsReply:          v.IsReply,
		SentAt:           validation.FormatTimestamp(v.SentAt),
	}
}
