package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"devconnector/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// writeError converts any failure into the API's wire shapes: field errors
// as {"errors": [...]}, route errors as {"msg": "..."}, everything
// unclassified as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *apierror.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, validationErr)
		return
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeMsg(w, apiErr.HTTPStatus, apiErr.Msg)
		return
	}

	slog.Error("unhandled error", "error", err.Error())
	writeMsg(w, http.StatusInternalServerError, "Server Error")
}
