package middleware

import (
	"log/slog"
	"net/http"

	"github.com/adminboard/internal/auth"
	"github.com/adminboard/internal/permissions"
	"github.com/adminboard/internal/transport"
)

// PermissionMiddleware injects the resolved permission set and gates
// permission-protected route groups with the pure evaluator.
type PermissionMiddleware struct {
	*transport.BaseHandler
}

func NewPermissionMiddleware(logger *slog.Logger) *PermissionMiddleware {
	return &PermissionMiddleware{BaseHandler: transport.NewBaseHandler(logger)}
}

// InjectPermissions attaches the held permission set for downstream gates and
// controllers. Every authenticated caller holds the default user role set;
// elevation happens through the super-admin flag, not extra grants.
func (m *PermissionMiddleware) InjectPermissions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserFromContext(r.Context()); !ok {
			next.ServeHTTP(w, r)
			return
		}
		ctx := permissions.ContextWith(r.Context(), permissions.DefaultPermissions["user"])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireConfig mirrors the evaluator's parameters minus the held set, which
// comes from the request context.
type RequireConfig struct {
	RequiredPermissions []permissions.Permission
	Condition           func(held []permissions.Permission) bool
}

// Require evaluates the held set against the config; denial is a 403
// envelope. Super-admins bypass evaluation entirely.
func (m *PermissionMiddleware) Require(config RequireConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := auth.UserFromContext(r.Context())
			if !ok {
				m.Fail(w, "No session found", nil)
				return
			}

			allowed, _ := permissions.Protect(permissions.ProtectParams{
				Permissions:         permissions.FromContext(r.Context()),
				RequiredPermissions: config.RequiredPermissions,
				SuperAdmin:          u.SuperAdmin,
				Condition:           config.Condition,
			})

			if !allowed {
				m.Logger.Warn("access denied: insufficient permissions",
					"user_id", u.ID,
					"required_permissions", config.RequiredPermissions)
				m.FailStatus(w, http.StatusForbidden, "You are not permitted to access this resource.", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
