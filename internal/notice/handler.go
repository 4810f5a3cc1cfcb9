package notice

import (
	"net/http"

	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
)

type ServiceAPI interface {
	Publish(p *coreUser.Principal, dto PublishDTO) (int64, error)
	Delete(p *coreUser.Principal, noticeID int64) error
	List(page, perPage int) (*Page, error)
	Detail(noticeID int64) (*Detail, error)
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

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto PublishDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Publish: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	noticeID, err := h.Service.Publish(p, dto)
	if err != nil {
		h.Logger.Error("Publish: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "notice published", transport.Payload{"notice_id": noticeID})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	noticeID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.Delete(p, noticeID); err != nil {
		h.Logger.Error("Delete: service error", "error", err, "notice_id", noticeID, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "notice deleted", nil)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _, err := validation.OptionalInt("page", q.Get("page"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	perPage, _, err := validation.OptionalInt("per_page", q.Get("per_page"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, svcErr := h.Service.List(page, perPage)
	if svcErr != nil {
		h.Logger.Error("List: service error", "error", svcErr)
		h.HandleServiceError(w, svcErr)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{
		"notices":      result.Notices,
		"total":        result.Total,
		"pages":        result.Pages,
		"current_page": result.CurrentPage,
	})
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	noticeID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.Service.Detail(noticeID)
	if err != nil {
		h.Logger.Error("Detail: service error", "error", err, "notice_id", noticeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{"notice": detail})
}
