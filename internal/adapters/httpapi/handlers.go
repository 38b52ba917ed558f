// internal/adapters/httpapi/handlers.go
package httpapi

import (
	"context"
	"encoding/json"
	"io/fs"
	"mime"
	"net/http"
	"strings"

	"movielinks/internal/core/domain"
	"movielinks/internal/core/usecases"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/validator"
)

// maxFormBytes caps the body of POST /search.
const maxFormBytes = 64 << 10

// MaxTitleLength is the longest title (in characters) /search and /suggest accept.
const MaxTitleLength = 200

// Searcher is the search surface the handlers need.
type Searcher interface {
	Search(ctx context.Context, title string) (*domain.SearchResult, error)
	Suggest(ctx context.Context, query string) ([]string, error)
}

// Handler serves the web endpoints.
type Handler struct {
	searcher Searcher
	logger   logx.Logger
	assets   fs.FS
}

// NewHandler creates a Handler over searcher.
func NewHandler(searcher Searcher, logger logx.Logger) *Handler {
	if logger == nil {
		logger = logx.New()
	}
	return &Handler{
		searcher: searcher,
		logger:   logger.With("component", "httpapi"),
		assets:   Assets(),
	}
}

// searchRequest is the JSON form of POST /search.
type searchRequest struct {
	MovieTitle string `json:"movie_title"`
}

// Search handles POST /search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	title, err := readTitle(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if validator.IsEmpty(title) {
		respondError(w, http.StatusBadRequest, usecases.EmptyTitleMessage)
		return
	}
	normalized := domain.NormalizeTitle(title)
	if !validator.MaxLength(normalized, MaxTitleLength) {
		respondError(w, http.StatusBadRequest, "Title is too long.")
		return
	}
	if !validator.IsPrintable(normalized) {
		respondError(w, http.StatusBadRequest, "Title contains invalid characters.")
		return
	}

	result, err := h.searcher.Search(r.Context(), title)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, result)
	case errors.IsInvalidInput(err):
		respondError(w, http.StatusBadRequest, usecases.EmptyTitleMessage)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		h.logger.Debug("search abandoned by client", "title", title)
		respondError(w, http.StatusServiceUnavailable, "Search was cancelled.")
	default:
		h.logger.Err(err, "handler", "search", "title", title)
		respondError(w, http.StatusInternalServerError, "An error occurred while fetching results.")
	}
}

// readTitle accepts a urlencoded or multipart form field movie_title, or a
// JSON body {"movie_title": "..."}.
func readTitle(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", err
		}
		return req.MovieTitle, nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return "", err
		}
	} else if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.FormValue("movie_title"), nil
}

// Suggest handles GET /suggest?q=
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" || !validator.MaxLength(query, MaxTitleLength) || !validator.IsPrintable(query) {
		respondJSON(w, http.StatusOK, []string{})
		return
	}

	titles, err := h.searcher.Suggest(r.Context(), query)
	if err != nil {
		// the form keeps working without suggestions
		h.logger.Warn("suggest failed", "query", query, "error", err.Error())
		titles = []string{}
	}
	respondJSON(w, http.StatusOK, titles)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.assets, "index.html")
	if err != nil {
		h.logger.Err(err, "handler", "index")
		respondError(w, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// NotFound handles unknown routes with a JSON body.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "not found")
}

// MethodNotAllowed handles a known route called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}
