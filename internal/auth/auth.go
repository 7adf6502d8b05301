package auth

import (
	"context"
	"net/http"

	"github.com/adminboard/internal/session"
	"github.com/adminboard/internal/user"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "session"

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO, requestInfo map[string]any) (*user.User, *session.Created, error)
	Register(ctx context.Context, dto RegisterDTO, requestInfo map[string]any) (*user.User, *session.Created, error)
	Refresh(ctx context.Context, sessionID string) (*session.View, bool, error)
	Logout(ctx context.Context, userID, sessionID string) error
	ResolveSession(ctx context.Context, sessionID string) (*session.View, bool, error)
}

// SetSessionCookie writes the session id with the fixed attribute set:
// HttpOnly, Secure, SameSite=Strict, scoped to the whole site.
func SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the cookie with the same attributes it was set
// with, otherwise browsers keep the stale copy.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// ReadSessionCookie returns the session id, or "" when no cookie is present.
func ReadSessionCookie(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// RequestInfo captures the request metadata stored on a new session row.
func RequestInfo(r *http.Request) map[string]any {
	headers := make(map[string]string, len(r.Header))
	for name := range r.Header {
		headers[name] = r.Header.Get(name)
	}
	// never persist the raw cookie or auth material
	delete(headers, "Cookie")
	delete(headers, "Authorization")

	return map[string]any{
		"method":      r.Method,
		"path":        r.URL.Path,
		"remote_addr": r.RemoteAddr,
		"headers":     headers,
	}
}

// Context carriage for the resolved identity. The enrichment middleware
// populates these; gates and controllers read them.

type ctxKey string

const (
	contextUserKey        ctxKey = "current_user"
	contextSessionDataKey ctxKey = "session_data"
)

func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(contextUserKey).(*user.User)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}

func SessionDataFromContext(ctx context.Context) (session.Data, bool) {
	d, ok := ctx.Value(contextSessionDataKey).(session.Data)
	return d, ok
}

func ContextWithSessionData(ctx context.Context, d session.Data) context.Context {
	return context.WithValue(ctx, contextSessionDataKey, d)
}
