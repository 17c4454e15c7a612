// Package httpx writes the JSON bodies served under /api.
package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"sheraa.ae/site/internal/platform/requestctx"
)

const contentType = "application/json; charset=utf-8"

// Error is the body of every failed /api response.
type Error struct {
	Code    string            `json:"error"`
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Fields  map[string]string `json:"fields,omitempty"`

	RequestID string `json:"request_id,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
}

// NewError returns an Error; a zero status means 500.
func NewError(code, message string, status int) Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Error{
		Code:    clip(code, 80),
		Message: clip(message, 512),
		Status:  status,
	}
}

// Field adds a per-parameter reason, e.g. Field("hl", "unsupported").
func (e Error) Field(name, reason string) Error {
	fields := make(map[string]string, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[clip(name, 64)] = clip(reason, 128)
	e.Fields = fields
	return e
}

// Error implements error so handlers can return the envelope directly.
func (e Error) Error() string { return e.Code + ": " + e.Message }

// WriteError writes e, filling the correlation ids from ctx when unset.
func WriteError(ctx context.Context, w http.ResponseWriter, e Error) {
	if e.Status == 0 {
		e.Status = http.StatusInternalServerError
	}
	ids := requestctx.Correlate(ctx)
	if e.RequestID == "" {
		e.RequestID = clip(ids.RequestID, 80)
	}
	if e.TraceID == "" {
		e.TraceID = clip(ids.TraceID, 64)
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, e.Status, e)
}

// WriteJSON encodes data with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// clip flattens value onto one line and bounds its length in bytes.
func clip(value string, limit int) string {
	value = strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(value))
	if len(value) > limit {
		value = strings.ToValidUTF8(value[:limit], "")
	}
	return value
}
