package blogpost

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/getsentry/sentry-go"

	"blogpost-api/internal/auth"
)

const maxFormBodyBytes = 1 << 20

const (
	maxTitleLen   = 150
	maxContentLen = 10000
)

// Handler serves the blog post CRUD endpoints. Every route is mounted behind
// the auth middleware, so an authenticated user is always on the context.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Create handles POST /blog_post/create: form fields title and content,
// stamped with the authenticated author.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no authenticated user")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	input, ok := validateInput(w, r.PostFormValue("title"), r.PostFormValue("content"))
	if !ok {
		return
	}

	post, err := h.store.Create(r.Context(), input, user.UUID, user.Username)
	if err != nil {
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to create blog post")
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// Get handles GET /blog_post/get?post_id=N.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	post, err := h.store.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "no blog post found")
			return
		}
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to get blog post")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// GetAll handles GET /blog_post/get_all.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.List(r.Context())
	if err != nil {
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to list blog posts")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// Update handles PUT /blog_post/update?post_id=N&title=..&content=.. — the
// replacement fields travel as query parameters.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	input, ok := validateInput(w, query.Get("title"), query.Get("content"))
	if !ok {
		return
	}

	post, err := h.store.Update(r.Context(), postID, input)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "no blog post found")
			return
		}
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to update blog post")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /blog_post/delete?post_id=N and returns the deleted
// post id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(r.Context(), postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "no blog post found")
			return
		}
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to delete blog post")
		return
	}

	writeJSON(w, http.StatusOK, deleted)
}

func parsePostID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("post_id"))
	postID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || postID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid post_id")
		return 0, false
	}
	return postID, true
}

func validateInput(w http.ResponseWriter, title, content string) (PostInput, bool) {
	input := PostInput{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}

	if input.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return PostInput{}, false
	}
	if !utf8.ValidString(input.Title) || len(input.Title) > maxTitleLen {
		writeError(w, http.StatusBadRequest, "title is invalid")
		return PostInput{}, false
	}
	if !utf8.ValidString(input.Content) || len(input.Content) > maxContentLen {
		writeError(w, http.StatusBadRequest, "content is invalid")
		return PostInput{}, false
	}

	return input, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
