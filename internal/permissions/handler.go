package permissions

import (
	"net/http"

	"github.com/adminboard/internal/auth"
	"github.com/adminboard/internal/session"
	"github.com/adminboard/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(baseHandler *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: baseHandler}
}

// GetPermissions returns the caller's session data. The login gate upstream
// guarantees it is populated; the zero value covers a gap anyway.
func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	data, _ := auth.SessionDataFromContext(r.Context())

	h.OK(w, "Successfully retrieved permissions", map[string]session.Data{
		"session_data": data,
	})
}
