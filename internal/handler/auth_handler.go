package handler

import (
	"encoding/json"
	"net/http"

	"devconnector/internal/middleware"
	"devconnector/internal/model"
	"devconnector/internal/service"
	"devconnector/pkg/apierror"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	token, err := h.auth.Login(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// Me returns the authenticated identity, password hash excluded.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("No token, authorization denied"))
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), subject)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
