package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
	"github.com/frahmantamala/enterprise-admin/pkg/logger"
)

const DefaultCookieName = "enterprise_session"

type ServiceAPI interface {
	Register(dto RegisterDTO) (*userDatamodel.User, error)
	Login(ctx context.Context, dto LoginDTO) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*coreUser.Principal, error)
	CurrentUser(p *coreUser.Principal) (*Profile, error)
}

type CookieOptions struct {
	Name   string
	Secure bool
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	cookie  CookieOptions
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, cookie CookieOptions) *Handler {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		cookie:      cookie,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("Register: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Warn("Register: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "registration successful", transport.Payload{"user_id": u.ID})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("Login: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("Login: authentication failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.WriteSuccess(w, "login successful", transport.Payload{
		"token": result.Token,
		"user":  result.User,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context(), h.tokenFromRequest(r)); err != nil {
		h.Logger.Error("Logout: failed to drop session", "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.WriteSuccess(w, "logged out", nil)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrNotLoggedIn)
		return
	}

	profile, err := h.Service.CurrentUser(p)
	if err != nil {
		h.Logger.Error("Me: service error", "error", err, "user_id", p.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, "", transport.Payload{"user": profile})
}

// SessionMiddleware resolves the request token into a principal and rejects
// the request with 401 when there is none.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := h.Service.Resolve(r.Context(), h.tokenFromRequest(r))
		if err != nil {
			h.Logger.Debug("session middleware: rejected", "error", err, "path", r.URL.Path)
			h.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithPrincipal(r.Context(), p)
		ctx = logger.WithUser(ctx, p.UserID, p.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest prefers the session cookie and falls back to a bearer token.
func (h *Handler) tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(h.cookie.Name); err == nil && c.Value != "" {
		return c.Value
	}
	return h.ExtractTokenFromHeader(r)
}
