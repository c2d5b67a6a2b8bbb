package portal_api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/query"
)

// envelope is the common response body of every /api endpoint.
type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       any               `json:"data,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Total      *int              `json:"total,omitempty"`
	Categories any               `json:"categories,omitempty"`
	Timestamp  string            `json:"timestamp,omitempty"`
}

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeCreated(w http.ResponseWriter, msg string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg, Data: data})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicate:
		return http.StatusConflict
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and a user message. Internal causes are
// logged and never leave the process.
func (a *PortalAPI) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindInternal:
		a.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
	case apperr.KindValidation:
		a.log.DebugContext(r.Context(), "validation failed", "path", r.URL.Path, "fields", apperr.FieldsOf(err))
	}
	writeFail(w, statusOf(kind), apperr.MessageOf(err))
}

// decodeJSON reads a JSON body into v. Unknown fields are accepted.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return apperr.Validation(apperr.MsgInvalidBody)
	}
	return nil
}
