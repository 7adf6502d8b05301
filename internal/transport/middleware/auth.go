package middleware

import (
	"log/slog"
	"net/http"

	"github.com/adminboard/internal"
	"github.com/adminboard/internal/auth"
	"github.com/adminboard/internal/session"
	"github.com/adminboard/internal/transport"
)

// LoginGuard holds the three request-scoped authorization middlewares.
// InjectUser is best-effort enrichment mounted on every route; RequireLogin
// and RequireSuperAdmin are hard gates for protected route groups. InjectUser
// and RequireLogin both resolve sessions on purpose, so each stays
// independently mountable per route group.
type LoginGuard struct {
	*transport.BaseHandler
	svc auth.ServiceAPI
}

func NewLoginGuard(svc auth.ServiceAPI, logger *slog.Logger) *LoginGuard {
	return &LoginGuard{
		BaseHandler: transport.NewBaseHandler(logger),
		svc:         svc,
	}
}

func (g *LoginGuard) attachIdentity(r *http.Request, view *session.View, sessionID string) *http.Request {
	ctx := r.Context()
	ctx = auth.ContextWithUser(ctx, view.User)
	ctx = auth.ContextWithSessionData(ctx, view.Data)
	ctx = internal.ContextWithUserID(ctx, view.User.ID)
	ctx = internal.ContextWithUserName(ctx, view.UserName)
	ctx = internal.ContextWithSessionID(ctx, sessionID)
	return r.WithContext(ctx)
}

// InjectUser resolves the session cookie when one is present and attaches the
// user and session data to the request context. It never blocks a request: a
// missing cookie passes through unauthenticated and a failed resolution
// deletes the now-invalid cookie and passes through unauthenticated.
func (g *LoginGuard) InjectUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := auth.ReadSessionCookie(r)
		if sessionID == "" {
			next.ServeHTTP(w, r)
			return
		}

		view, _, err := g.svc.ResolveSession(r.Context(), sessionID)
		if err != nil {
			auth.ClearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, g.attachIdentity(r, view, sessionID))
	})
}

// RequireLogin fails closed for protected routes. When enrichment already
// resolved a user it short-circuits; otherwise it performs its own session
// resolution so the gate works even on route groups mounted without
// InjectUser.
func (g *LoginGuard) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := auth.ReadSessionCookie(r)
		if sessionID == "" {
			g.Fail(w, internal.ErrNoSession.Message, nil)
			return
		}

		if _, ok := auth.UserFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		view, _, err := g.svc.ResolveSession(r.Context(), sessionID)
		if err != nil {
			auth.ClearSessionCookie(w)
			message := internal.ErrNoSession.Message
			if appErr, isApp := internal.IsAppError(err); isApp {
				message = appErr.Message
			}
			g.Fail(w, message, nil)
			return
		}

		next.ServeHTTP(w, g.attachIdentity(r, view, sessionID))
	})
}

// RequireSuperAdmin expects a user already resolved by an earlier gate.
func (g *LoginGuard) RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFromContext(r.Context())
		if !ok || !u.SuperAdmin {
			g.FailStatus(w, internal.ErrNotPermitted.StatusCode, internal.ErrNotPermitted.Message, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
