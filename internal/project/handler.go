package project

import (
	"net/http"

	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
)

type ServiceAPI interface {
	Create(p *coreUser.Principal, dto CreateProjectDTO) (*Project, error)
	AddMember(p *coreUser.Principal, projectID int64, dto AddMemberDTO) error
	Detail(p *coreUser.Principal, projectID int64) (*DetailResponse, error)
	MyProjects(p *coreUser.Principal) ([]MembershipResponse, error)
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto CreateProjectDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proj, err := h.Service.Create(p, dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "project created", transport.Payload{"project_id": proj.ID})
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	projectID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	var dto AddMemberDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("AddMember: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AddMember(p, projectID, dto); err != nil {
		h.Logger.Error("AddMember: service error", "error", err, "project_id", projectID, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "member added", nil)
}

func (h *Handler) MyProjects(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	projects, err := h.Service.MyProjects(p)
	if err != nil {
		h.Logger.Error("MyProjects: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{"projects": projects})
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	projectID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.Service.Detail(p, projectID)
	if err != nil {
		h.Logger.Error("Detail: service error", "error", err, "project_id", projectID, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{"project": detail})
}
