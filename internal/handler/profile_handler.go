package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devconnector/internal/middleware"
	"devconnector/internal/model"
	"devconnector/internal/service"
	"devconnector/pkg/apierror"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())

	profile, err := h.profiles.Me(r.Context(), subject)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	subject, _ := middleware.SubjectFromContext(r.Context())

	var payload model.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	profile, err := h.profiles.Save(r.Context(), subject, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) ByUserID(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.ByUserID(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// DeleteAccount removes the profile and the user. Posts stay behind.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())

	if err := h.profiles.DeleteAccount(r.Context(), subject); err != nil {
		writeError(w, err)
		return
	}

	writeMsg(w, http.StatusOK, "User Deleted")
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	subject, _ := middleware.SubjectFromContext(r.Context())

	var payload model.ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	profile, err := h.profiles.AddExperience(r.Context(), subject, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())

	profile, err := h.profiles.RemoveExperience(r.Context(), subject, chi.URLParam(r, "exp_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	subject, _ := middleware.SubjectFromContext(r.Context())

	var payload model.EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	profile, err := h.profiles.AddEducation(r.Context(), subject, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())

	profile, err := h.profiles.RemoveEducation(r.Context(), subject, chi.URLParam(r, "edu_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
