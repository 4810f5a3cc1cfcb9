package mail

import (
	"context"
	"net/http"

	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
)

type ServiceAPI interface {
	Send(ctx context.Context, p *coreUser.Principal, dto SendDTO) (int64, error)
	Inbox(p *coreUser.Principal) ([]InboxItem, error)
	Sent(p *coreUser.Principal) ([]SentItem, error)
	MarkRead(p *coreUser.Principal, mailID int64) error
	Reply(ctx context.Context, p *coreUser.Principal, mailID int64, dto ReplyDTO) (int64, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto SendDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Send: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mailID, err := h.Service.Send(r.Context(), p, dto)
	if err != nil {
		h.Logger.Error("Send: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "mail sent", transport.Payload{"mail_id": mailID})
}

func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	mails, err := h.Service.Inbox(p)
	if err != nil {
		h.Logger.Error("Inbox: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{"mails": mails})
}

func (h *Handler) Sent(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	mails, err := h.Service.Sent(p)
	if err != nil {
		h.Logger.Error("Sent: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{"mails": mails})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	mailID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.MarkRead(p, mailID); err != nil {
		h.Logger.Error("MarkRead: service error", "error", err, "mail_id", mailID, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "mail marked as read", nil)
}

func (h *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	mailID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	var dto ReplyDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Reply: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	replyID, err := h.Service.Reply(r.Context(), p, mailID, dto)
	if err != nil {
		h.Logger.Error("Reply: service error", "error", err, "mail_id", mailID, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "reply sent", transport.Payload{"mail_id": replyID})
}
