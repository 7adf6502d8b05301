package auth

import (
	"encoding/json"
	"net/http"

	"github.com/adminboard/internal"
	"github.com/adminboard/internal/transport"
	"github.com/adminboard/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// Login handles POST /api/auth.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Fail(w, "invalid request body", nil)
		return
	}

	u, created, err := h.Service.Login(r.Context(), dto, RequestInfo(r))
	if err != nil {
		h.Logger.Warn("login failed", "email", dto.Email, "error", err)
		h.FailError(w, err)
		return
	}

	SetSessionCookie(w, created.ID)
	h.OK(w, "Successfully logged in", u.Sanitized())
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Fail(w, "invalid request body", nil)
		return
	}

	u, created, err := h.Service.Register(r.Context(), dto, RequestInfo(r))
	if err != nil {
		h.FailError(w, err)
		return
	}

	SetSessionCookie(w, created.ID)
	h.OK(w, "Successfully registered", u.Sanitized())
}

// Refresh handles POST /api/auth/refresh: re-validates the presented session
// and forces a snapshot refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sessionID := ReadSessionCookie(r)
	if sessionID == "" {
		h.Fail(w, "Session not found", nil)
		return
	}

	if _, _, err := h.Service.Refresh(r.Context(), sessionID); err != nil {
		h.FailError(w, err)
		return
	}
	h.OK(w, "Session data updated", nil)
}

// Logout handles DELETE /api/auth. Mounted behind the login gate, so the
// request identity is already on the context.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	sessionID := internal.SessionIDFromContext(r.Context())
	if sessionID == "" {
		sessionID = ReadSessionCookie(r)
	}

	// The cookie is gone either way; a failed deactivation must not leave the
	// client holding a cookie the server considers live.
	ClearSessionCookie(w)

	if err := h.Service.Logout(r.Context(), userID, sessionID); err != nil {
		h.FailError(w, err)
		return
	}
	h.OK(w, "Successfully logged out", nil)
}
