package web

import (
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/gopherkit/http/response"
)

// MessageResponse is the body of a plain success response.
type MessageResponse struct {
	Message string `json:"msg"`
}

// ErrorResponse represents the structure of a JSON-encoded error response.
//
// It includes a general error detail and, optionally, a map of field-level
// validation errors. The Errors field is omitted from the response if empty.
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

// OK writes data as a JSON-encoded success response with the given status.
func OK[T any](w http.ResponseWriter, status int, data T) {
	response.JSON(w, status, data)
}

// Msg writes a success response of the form {"msg": "..."}.
func Msg(w http.ResponseWriter, status int, msg string) {
	response.JSON(w, status, &MessageResponse{Message: msg})
}

// Fail writes a JSON-encoded error response to w with the provided HTTP status code.
//
// The response includes a human-readable detail and an optional map of
// field-specific validation errors. The reason is logged using slog at
// Error level with the key "reason" and is never sent to the client.
//
// Example usage:
//
//	Fail(w, http.StatusBadRequest, err, "Invalid input.", map[string]string{
//		"email": "must be a valid email address",
//	})
//
// The JSON response has the form:
//
//	{
//	  "detail": "Invalid input.",
//	  "errors": {
//	    "email": "must be a valid email address"
//	  }
//	}
func Fail(w http.ResponseWriter, status int, reason error, detail string, errs map[string]string) {
	slog.Error("request failed", "reason", reason)
	payload := &ErrorResponse{
		Detail: detail,
		Errors: errs,
	}
	response.JSON(w, status, payload)
}
