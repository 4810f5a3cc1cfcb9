package mail

import (
	"strings"

	errors "github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
)

type SendDTO struct {
	ReceiverID int64  `json:"receiver_id"`
	Subject    string `json:"subject"`
	Content    string `json:"content"`
	IsReply    bool   `json:"is_reply"`
}

func (d *SendDTO) Validate() *errors.AppError {
	d.Subject = strings.TrimSpace(d.Subject)
	v := validation.NewValidator()
	v.Field("receiver_id", d.ReceiverID).Required()
	v.Field("subject", d.Subject).Required().MaxLength(200)
	v.Field("content", d.Content).Required()
	return v.Validate()
}

type ReplyDTO struct {
	Content string `json:"content"`
}

func (d ReplyDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("content", d.Content).Required()
	return v.Validate()
}
