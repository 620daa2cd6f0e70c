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

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	subject, _ := middleware.SubjectFromContext(r.Context())

	var payload model.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	post, err := h.posts.Create(r.Context(), subject, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())

	if err := h.posts.Delete(r.Context(), subject, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeMsg(w, http.StatusOK, "Post Removed")
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())

	likes, err := h.posts.Like(r.Context(), subject, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())

	likes, err := h.posts.Unlike(r.Context(), subject, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	subject, _ := middleware.SubjectFromContext(r.Context())

	var payload model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	comments, err := h.posts.AddComment(r.Context(), subject, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

func (h *PostHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())

	comments, err := h.posts.RemoveComment(r.Context(), subject, chi.URLParam(r, "id"), chi.URLParam(r, "comment_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}
