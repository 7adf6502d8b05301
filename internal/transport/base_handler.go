package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/adminboard/internal"
	"github.com/adminboard/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WriteEnvelope writes the uniform response envelope with the given status.
func (h *BaseHandler) WriteEnvelope(w http.ResponseWriter, status int, env internal.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// OK writes a success envelope.
func (h *BaseHandler) OK(w http.ResponseWriter, message string, data any) {
	h.WriteEnvelope(w, http.StatusOK, internal.Success(message, data))
}

// OKPaged writes a success envelope with page information.
func (h *BaseHandler) OKPaged(w http.ResponseWriter, message string, data any, pageInfo *internal.PageInfo) {
	env := internal.Success(message, data)
	env.PageInfo = pageInfo
	h.WriteEnvelope(w, http.StatusOK, env)
}

// Fail writes a failure envelope. Failures in this API are 200-status
// envelopes with success=false; only permission-guard denials use FailStatus.
func (h *BaseHandler) Fail(w http.ResponseWriter, message string, data any) {
	h.WriteEnvelope(w, http.StatusOK, internal.Failure(message, data))
}

// FailStatus writes a failure envelope with an explicit HTTP status.
func (h *BaseHandler) FailStatus(w http.ResponseWriter, status int, message string, data any) {
	h.WriteEnvelope(w, status, internal.Failure(message, data))
}

// FailError converts a service error into the failure envelope, surfacing
// AppError messages verbatim and hiding everything else.
func (h *BaseHandler) FailError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		if appErr.Cause != nil {
			h.Logger.Error("request failed", "code", appErr.Code, "error", appErr.Cause)
		}
		h.Fail(w, appErr.Message, nil)
		return
	}
	h.Logger.Error("request failed", "error", err)
	h.Fail(w, err.Error(), nil)
}
