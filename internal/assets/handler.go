package assets

import (
	_ "embed"
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/adminboard/internal/transport"
	"github.com/go-chi/chi"
)

//go:embed default_image.svg
var defaultImage []byte

type Handler struct {
	*transport.BaseHandler
	Store ObjectStore
}

func NewHandler(baseHandler *transport.BaseHandler, store ObjectStore) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Store:       store,
	}
}

// GetAsset streams the requested object, falling back to the default
// placeholder image when the key is missing. This endpoint never fails: a
// broken avatar reference still renders something.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")

	obj, err := h.Store.Get(r.Context(), key)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.Logger.Warn("asset lookup failed", "key", key, "error", err)
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(defaultImage)
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", "image/webp")
	if _, err := io.Copy(w, obj); err != nil {
		h.Logger.Warn("asset stream interrupted", "key", key, "error", err)
	}
}
