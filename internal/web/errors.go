package web

// errors.go turns load failures into JSON error responses.
//
// The flow:
//  1. A handler gets an error from the loader
//  2. It calls respondError(w, r, err)
//  3. core.MapError picks the user message and code
//  4. The code picks the HTTP status
//  5. The technical error is logged with the request id

import (
	"net/http"

	"github.com/JonMunkholm/csvasset/internal/core"
	"github.com/JonMunkholm/csvasset/internal/logging"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusByCode maps user message codes to HTTP status. Unlisted codes are 500.
var statusByCode = map[string]int{
	"SRC001": http.StatusNotFound,
	"SRC002": http.StatusBadRequest,
	"SRC003": http.StatusRequestEntityTooLarge,
	"NET001": http.StatusBadGateway,
	"NET002": http.StatusBadGateway,
	"REQ002": http.StatusGatewayTimeout,
	"REQ004": http.StatusServiceUnavailable,
}

// statusFor returns the HTTP status for a mapped error.
func statusFor(msg core.UserMessage) int {
	if status, ok := statusByCode[msg.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes its user-facing form.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := core.MapError(err)
	status := statusFor(msg)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	)

	writeJSON(w, status, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}
