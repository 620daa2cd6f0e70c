package apierror

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError is a failure with a client-facing message and an HTTP status.
// It renders on the wire as {"msg": "..."}.
type APIError struct {
	Msg        string `json:"msg"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%d: %s", e.HTTPStatus, e.Msg)
}

func New(status int, msg string) *APIError {
	return &APIError{Msg: msg, HTTPStatus: status}
}

func BadRequest(msg string) *APIError {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) *APIError {
	return New(http.StatusUnauthorized, msg)
}

func NotFound(msg string) *APIError {
	return New(http.StatusNotFound, msg)
}

// FieldError is a single structured validation failure.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ValidationError is a 400 with a list of field errors, rendered on the
// wire as {"errors": [{"msg": "...", "param": "..."}]}.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func Validation(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
