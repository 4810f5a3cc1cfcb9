package worklog

import (
	"net/http"

	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
)

type ServiceAPI interface {
	Submit(p *coreUser.Principal, dto SubmitDTO) (int64, error)
	Update(p *coreUser.Principal, logID int64, dto UpdateDTO) error
	ListMine(p *coreUser.Principal, period Period) ([]Log, error)
	ListAll(p *coreUser.Principal, filter Filter) ([]Log, error)
	TeamStats(p *coreUser.Principal, period Period) (*TeamStats, error)
	Period(year, month int, hasYear, hasMonth bool) (Period, error)
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
	h.WriteSuccess(w, "work log submitted", transport.Payload{"log_id": id})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	logID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	var dto UpdateDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Update: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Update(p, logID, dto); err != nil {
		h.Logger.Error("Update: service error", "error", err, "log_id", logID, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "work log updated", nil)
}

func (h *Handler) MyLogs(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	logs, err := h.Service.ListMine(p, period)
	if err != nil {
		h.Logger.Error("MyLogs: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "", transport.Payload{"logs": logs})
}

func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	filter := Filter{Period: period}
	userID, hasUser, verr := validation.OptionalInt("user_id", r.URL.Query().Get("user_id"))
	if verr != nil {
		h.HandleServiceError(w, verr)
		return
	}
	if hasUser {
		id := int64(userID)
		filter.UserID = &id
	}

	logs, err := h.Service.ListAll(p, filter)
	if err != nil {
		h.Logger.Error("All: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "", transport.Payload{"logs": logs})
}

func (h *Handler) TeamStats(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	stats, err := h.Service.TeamStats(p, period)
	if err != nil {
		h.Logger.Error("TeamStats: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "", transport.Payload{"stats": stats.Stats, "period": stats.Period})
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request) (Period, bool) {
	q := r.URL.Query()
	year, hasYear, verr := validation.OptionalInt("year", q.Get("year"))
	if verr != nil {
		h.HandleServiceError(w, verr)
		return Period{}, false
	}
	month, hasMonth, verr := validation.OptionalInt("month", q.Get("month"))
	if verr != nil {
		h.HandleServiceError(w, verr)
		return Period{}, false
	}

	period, err := h.Service.Period(year, month, hasYear, hasMonth)
	if err != nil {
		h.HandleServiceError(w, err)
		return Period{}, false
	}
	return period, true
}
