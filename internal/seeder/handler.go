package seeder

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/adminboard/internal/transport"
	"github.com/adminboard/internal/user"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
	Users   user.RepositoryAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service, users user.RepositoryAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Users:       users,
	}
}

// parseAmount rejects anything that is not a positive integer.
func (h *Handler) parseAmount(w http.ResponseWriter, r *http.Request) (int, bool) {
	amount, err := strconv.Atoi(chi.URLParam(r, "amount"))
	if err != nil || amount <= 0 {
		h.Fail(w, "Amount is required and must be a positive integer.", nil)
		return 0, false
	}
	return amount, true
}

// SeedUsers handles GET /api/seeders/users/{amount}.
func (h *Handler) SeedUsers(w http.ResponseWriter, r *http.Request) {
	amount, ok := h.parseAmount(w, r)
	if !ok {
		return
	}

	seeded, err := h.Service.SeedUsers(r.Context(), h.Users, amount)
	if err != nil {
		h.Logger.Error("user seeding failed", "amount", amount, "error", err)
		h.Fail(w, "Failed to seed users.", nil)
		return
	}

	h.OK(w, "Successfully seeded users.", seeded)
}

type bootstrapEntry struct {
	Entity  string `json:"entity"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type bootstrapSummary struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
}

// Bootstrap runs every seedable entity in dependency order. Each entity
// reports its own outcome; the envelope itself succeeds when the run
// completed.
func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	amount, ok := h.parseAmount(w, r)
	if !ok {
		return
	}

	var (
		results []bootstrapEntry
		summary []bootstrapSummary
	)

	seeded, err := h.Service.SeedUsers(r.Context(), h.Users, amount)
	entry := bootstrapEntry{Entity: "users", Success: true, Message: "Successfully seeded users.", Data: seeded}
	if err != nil {
		h.Logger.Error("bootstrap: user seeding failed", "amount", amount, "error", err)
		entry = bootstrapEntry{Entity: "users", Success: false, Message: "Failed to seed users."}
	}
	results = append(results, entry)
	summary = append(summary, bootstrapSummary{Name: "users", Success: entry.Success})

	h.OK(w, "Bootstrap operation completed.", map[string]any{
		"resultSummary": summary,
		"results":       results,
	})
}

// Index documents the seeder routes.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	routes := map[string]string{
		"users":     fmt.Sprintf("GET: %s/api/seeders/users/{amount}", r.Host),
		"bootstrap": fmt.Sprintf("GET: %s/api/seeders/bootstrap/{amount}", r.Host),
	}
	h.OK(w, "Seeder information. SEEDER SHOULD ONLY BE USED FOR DEVELOPMENT.", routes)
}
