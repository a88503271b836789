package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sellmypostoffice/valuation-api/internal/usecase"
)

// BlogHandler keeps the original flat route shape: one path, the id
// and slug carried as query parameters.
type BlogHandler struct {
	Blog *usecase.BlogUseCase
}

func NewBlogHandler(blog *usecase.BlogUseCase) *BlogHandler {
	return &BlogHandler{Blog: blog}
}

// HandleGet is GET /blog-posts: full list, or a single post via
// ?id= or ?slug=. Public.
func (h *BlogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		post, err := h.Blog.GetByID(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
		return
	}

	if slug := r.URL.Query().Get("slug"); slug != "" {
		post, err := h.Blog.GetBySlug(r.Context(), slug)
		if err != nil {
			writeUsecaseError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
		return
	}

	posts, err := h.Blog.List(r.Context())
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.BlogPostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	post, err := h.Blog.Create(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
		usecase.BlogPostInput
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if body.ID == "" {
		writeError(w, http.StatusBadRequest, "Missing post ID")
		return
	}

	post, err := h.Blog.Update(r.Context(), body.ID, body.BlogPostInput)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing post ID")
		return
	}

	removed, err := h.Blog.Delete(r.Context(), id)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": removed})
}
