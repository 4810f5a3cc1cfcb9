package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/enterprise-admin/internal"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/pkg/logger"
	"github.com/go-chi/chi"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Payload holds the extra top-level keys of a success envelope.
type Payload map[string]interface{}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess writes {"status":"success", "message":..., ...payload}.
// An empty message is omitted.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, message string, payload Payload) {
	body := make(map[string]interface{}, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["status"] = StatusSuccess
	if message != "" {
		body["message"] = message
	}
	h.WriteJSON(w, http.StatusOK, body)
}

// WriteError writes an error envelope without a machine code.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Warn("http error", "status", status, "message", message)
	h.WriteJSON(w, status, internal.Envelope{
		Status:  StatusError,
		Message: message,
	})
}

// HandleServiceError maps a service error to its envelope. Unknown errors
// become a 500 with a generic message; the cause is only logged.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		if status >= http.StatusInternalServerError {
			h.Logger.Error("service error", "error", err)
			body.Message = "internal server error"
			body.Details = nil
		}
		h.WriteJSON(w, status, body)
		return
	}

	h.Logger.Error("unexpected service error", "error", err)
	h.WriteJSON(w, http.StatusInternalServerError, internal.Envelope{
		Status:  StatusError,
		Message: "internal server error",
		Code:    "INTERNAL_ERROR",
	})
}

// DecodeJSON decodes the request body into dst. An empty body leaves dst
// untouched so required-field validation reports the problem instead.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// URLParamInt64 parses a numeric chi path parameter.
func (h *BaseHandler) URLParamInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// PathID parses the numeric path parameter name, writing a 400 when it is
// not a number.
func (h *BaseHandler) PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := h.URLParamInt64(r, name)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// Principal returns the session principal or writes a 401.
func (h *BaseHandler) Principal(w http.ResponseWriter, r *http.Request) (*coreUser.Principal, bool) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.Logger.Warn("principal not found in context", "path", r.URL.Path)
		h.HandleServiceError(w, internal.ErrNotLoggedIn)
		return nil, false
	}
	return p, true
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
