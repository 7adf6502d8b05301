package tables

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/adminboard/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetTable dumps one table, honoring the optional ?columns=a,b projection.
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	tableName := chi.URLParam(r, "tableName")

	if !h.Service.Exists(tableName) {
		h.Fail(w, fmt.Sprintf("Table %s does not exist", tableName), nil)
		return
	}

	var columns []string
	if raw := r.URL.Query().Get("columns"); raw != "" {
		columns = strings.Split(raw, ",")
	}

	rows, err := h.Service.Dump(r.Context(), tableName, columns)
	if err != nil {
		h.Logger.Error("failed to fetch table", "table", tableName, "error", err)
		h.Fail(w, fmt.Sprintf("Failed to fetch %s", tableName), nil)
		return
	}

	h.OK(w, fmt.Sprintf("Successfully fetched %s", tableName), rows)
}

// Index lists the available table routes.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	routes := make([]string, 0, len(h.Service.Names()))
	for _, name := range h.Service.Names() {
		routes = append(routes, fmt.Sprintf("GET: %s/api/tables/%s", r.Host, name))
	}
	h.OK(w, "Available tables", routes)
}
