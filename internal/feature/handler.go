package feature

import (
	"net/http"

	"github.com/adminboard/internal"
	"github.com/adminboard/internal/transport"
)

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

// GetFeatures lists every feature flag. Public: flags gate UI behavior and
// carry nothing sensitive.
func (h *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.FailError(w, err)
		return
	}

	h.OKPaged(w, "Features fetched successfully", features, internal.PageOf(features))
}
