package leave

import (
	"context"
	"net/http"

	"github.com/frahmantamala/enterprise-admin/internal/core/approval"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
)

type ServiceAPI interface {
	Submit(p *coreUser.Principal, dto SubmitDTO) (int64, error)
	ListMine(p *coreUser.Principal) ([]Request, error)
	ListPending(p *coreUser.Principal) ([]Request, error)
	Approve(ctx context.Context, p *coreUser.Principal, id int64, dto approval.ActionDTO) (string, error)
	ListAll(p *coreUser.Principal) ([]Request, error)
	Detail(p *coreUser.Principal, id int64) (*Request, error)
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

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto SubmitDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Submit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.Service.Submit(p, dto)
	if err != nil {
		h.Logger.Error("Submit: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "leave request submitted", transport.Payload{"leave_id": id})
}

func (h *Handler) MyRequests(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	requests, err := h.Service.ListMine(p)
	if err != nil {
		h.Logger.Error("MyRequests: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "", transport.Payload{"requests": requests})
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	requests, err := h.Service.ListPending(p)
	if err != nil {
		h.Logger.Error("Pending: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "", transport.Payload{"requests": requests})
}

func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	requests, err := h.Service.ListAll(p)
	if err != nil {
		h.Logger.Error("All: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "", transport.Payload{"requests": requests})
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	var dto approval.ActionDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Approve: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.Service.Approve(r.Context(), p, id, dto)
	if err != nil {
		h.Logger.Error("Approve: service error", "error", err, "leave_id", id, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "leave request "+status, transport.Payload{"request_status": status})
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	request, err := h.Service.Detail(p, id)
	if err != nil {
		h.Logger.Error("Detail: service error", "error", err, "leave_id", id, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "", transport.Payload{"request": request})
}
