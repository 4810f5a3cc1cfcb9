package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/enterprise-admin/internal"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/transport"
)

type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

// RequireRole lets the request through only when the session principal
// holds one of roles.
func (ra *RBACAuthorization) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := internal.PrincipalFromContext(r.Context())
			if !ok || p == nil {
				ra.Logger.Warn("authorization check failed: principal not found in context")
				ra.HandleServiceError(w, internal.ErrNotLoggedIn)
				return
			}

			if !p.HasAnyRole(roles...) {
				ra.Logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", p.UserID,
					"role", p.Role,
					"required_roles", roles)
				ra.HandleServiceError(w, internal.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(coreUser.RoleAdmin)
}

func (ra *RBACAuthorization) RequireManagerOrAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(coreUser.RoleManager, coreUser.RoleAdmin)
}
