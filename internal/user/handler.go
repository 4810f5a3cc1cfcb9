package user

import (
	"net/http"

	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
)

type ServiceAPI interface {
	Me(p *coreUser.Principal) (*Profile, error)
	Detail(p *coreUser.Principal, targetID int64) (*Profile, error)
	Update(p *coreUser.Principal, dto UpdateProfileDTO) error
	ChangePassword(p *coreUser.Principal, dto ChangePasswordDTO) error
	List(p *coreUser.Principal) ([]ListItem, error)
	AdminUpdate(p *coreUser.Principal, targetID int64, dto AdminUpdateDTO) error
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

// GetCurrentUser handles GET /user/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	profile, err := h.Service.Me(p)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "user_id", p.UserID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{"user": profile})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	targetID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.Service.Detail(p, targetID)
	if err != nil {
		h.Logger.Error("GetUser: service error", "user_id", p.UserID, "target_id", targetID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{"user": profile})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto UpdateProfileDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("UpdateProfile: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Update(p, dto); err != nil {
		h.Logger.Error("UpdateProfile: service error", "user_id", p.UserID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "profile updated", nil)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto ChangePasswordDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("ChangePassword: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(p, dto); err != nil {
		h.Logger.Warn("ChangePassword: service error", "user_id", p.UserID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "password changed", nil)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	users, err := h.Service.List(p)
	if err != nil {
		h.Logger.Error("ListUsers: service error", "user_id", p.UserID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{"users": users})
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	targetID, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}

	var dto AdminUpdateDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("AdminUpdate: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AdminUpdate(p, targetID, dto); err != nil {
		h.Logger.Error("AdminUpdate: service error", "user_id", p.UserID, "target_id", targetID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "user updated", nil)
}
