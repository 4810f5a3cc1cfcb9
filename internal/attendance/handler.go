package attendance

import (
	"net/http"

	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
)

type ServiceAPI interface {
	CheckInOrOut(p *coreUser.Principal) (*CheckResult, error)
	ListPersonal(p *coreUser.Principal, year, month int) ([]Record, error)
	ListDepartment(p *coreUser.Principal, department string, year, month int) (map[string][]Record, error)
	AddNote(p *coreUser.Principal, recordID int64, note string) error
}

type NoteDTO struct {
	Note string `json:"note"`
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

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	result, err := h.Service.CheckInOrOut(p)
	if err != nil {
		h.Logger.Error("Check: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	message := "checked in"
	if result.Action == ActionCheckOut {
		message = "checked out"
	}
	h.WriteSuccess(w, message, transport.Payload{result.Action: result.Time})
}

func (h *Handler) Personal(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	year, month, ok := h.period(w, r)
	if !ok {
		return
	}

	records, err := h.Service.ListPersonal(p, year, month)
	if err != nil {
		h.Logger.Error("Personal: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "", transport.Payload{"records": records})
}

func (h *Handler) Department(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	year, month, ok := h.period(w, r)
	if !ok {
		return
	}

	grouped, err := h.Service.ListDepartment(p, r.URL.Query().Get(departmentParameter), year, month)
	if err != nil {
		h.Logger.Error("Department: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "", transport.Payload{"attendance": grouped})
}

func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	recordID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	var dto NoteDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("AddNote: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AddNote(p, recordID, dto.Note); err != nil {
		h.Logger.Error("AddNote: service error", "error", err, "record_id", recordID, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, "note added", nil)
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	q := r.URL.Query()
	year, _, err := validation.OptionalInt("year", q.Get("year"))
	if err != nil {
		h.HandleServiceError(w, err)
		return 0, 0, false
	}
	month, _, err := validation.OptionalInt("month", q.Get("month"))
	if err != nil {
		h.HandleServiceError(w, err)
		return 0, 0, false
	}
	return year, month, true
}
