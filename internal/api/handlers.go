package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ogrim/mimir/internal/apperr"
	"github.com/ogrim/mimir/internal/checksum"
	"github.com/ogrim/mimir/internal/gate"
	"github.com/ogrim/mimir/internal/sse"
	"github.com/ogrim/mimir/internal/wikiservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *wikiservice.Service
	keeper *gate.Keeper
	broker *sse.Broker
}

// NewHandler creates a new Handler. broker may be nil (no event publishing).
func NewHandler(svc *wikiservice.Service, keeper *gate.Keeper, broker *sse.Broker) *Handler {
	return &Handler{svc: svc, keeper: keeper, broker: broker}
}

// articleTitle extracts the article title from the URL (everything after
// /api/articles/). Titles may contain slashes, so the route is a catch-all;
// encoded characters are supported.
func articleTitle(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListArticles handles GET /api/articles.
//
//	@Summary		List articles, newest first, with optional title filter
//	@Tags			articles
//	@Produce		json
//	@Param			q	query		string	false	"Title substring filter"
//	@Success		200	{object}	ArticleListResponse
//	@Router			/articles [get]
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	items := h.svc.ListArticles(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, ArticleListResponse{Articles: items, Total: len(items)})
}

// GetArticle handles GET /api/articles/*.
//
//	@Summary		Get a single article by title
//	@Tags			articles
//	@Produce		json
//	@Param			title	path		string	true	"Article title"
//	@Success		200		{object}	wikiservice.ArticleDetail
//	@Failure		404		{object}	errResponse
//	@Router			/articles/{title} [get]
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	title := articleTitle(r)
	if title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}
	a, err := h.svc.GetArticle(r.Context(), title)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get article failed", slog.String("title", title), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// CreateArticle handles POST /api/articles.
//
//	@Summary		Create a new article
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateArticleRequest	true	"Article to create"
//	@Success		201		{object}	wikiservice.ArticleDetail
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/articles [post]
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	a, err := h.svc.CreateArticle(r.Context(), req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrEmptyTitle):
			writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		case errors.Is(err, apperr.ErrDuplicateTitle):
			writeJSON(w, http.StatusConflict, errorBody("an article with this title already exists"))
		default:
			slog.Error("create article failed", slog.String("title", req.Title), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if h.broker != nil {
		h.broker.PublishArticleEvent("created", a.Title)
	}
	writeJSON(w, http.StatusCreated, a)
}

// UpdateArticle handles PUT /api/articles/{id}.
//
//	@Summary		Update an article with optimistic concurrency
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Article id"
//	@Param			If-Match	header	string					false	"SHA-256 checksum for optimistic concurrency"
//	@Param			body	body		UpdateArticleRequest	true	"Updated title and content"
//	@Success		200		{object}	wikiservice.ArticleDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/articles/{id} [put]
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	id := chi.URLParam(r, "id")

	var req UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)

	a, err := h.svc.UpdateArticle(r.Context(), id, req.Title, req.Content, ifMatch)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrEmptyTitle):
			writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		case errors.Is(err, apperr.ErrDuplicateTitle):
			writeJSON(w, http.StatusConflict, errorBody("an article with this title already exists"))
		case errors.Is(err, apperr.ErrConflict):
			writeJSON(w, http.StatusConflict, errorBody("checksum mismatch"))
		default:
			slog.Error("update article failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if h.broker != nil {
		h.broker.PublishArticleEvent("updated", a.Title)
	}
	writeJSON(w, http.StatusOK, a)
}

// RandomArticle handles GET /api/random.
//
//	@Summary		Get a uniformly chosen article
//	@Tags			articles
//	@Produce		json
//	@Success		200	{object}	wikiservice.ArticleDetail
//	@Failure		404	{object}	errResponse
//	@Router			/random [get]
func (h *Handler) RandomArticle(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.RandomArticle(r.Context())
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("collection is empty"))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Resolve handles GET /api/resolve.
//
//	@Summary		Map a location fragment to a view outcome
//	@Tags			routing
//	@Produce		json
//	@Param			fragment	query		string	true	"Location fragment, e.g. #/Title"
//	@Success		200			{object}	ResolveResponse
//	@Router			/resolve [get]
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	fragment := r.URL.Query().Get("fragment")
	out := h.svc.Resolve(r.Context(), fragment, h.keeper.Unlocked())
	writeJSON(w, http.StatusOK, ResolveResponse{Outcome: out})
}

// Export handles GET /api/export. The gate middleware keeps it locked away
// until the tap sequence has been completed.
//
//	@Summary		Download the collection as a snapshot document
//	@Tags			snapshot
//	@Produce		json
//	@Success		200	{object}	models.Snapshot
//	@Failure		403	{object}	errResponse
//	@Router			/export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Export(r.Context())
	if err != nil {
		slog.Error("export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	etag := `"` + checksum.Sum(data) + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="articles.json"`)
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import handles POST /api/import. Import is deliberately not gated: restoring
// a snapshot must work on a fresh locked session.
//
//	@Summary		Replace the collection with an uploaded snapshot
//	@Tags			snapshot
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	ImportResponse
//	@Failure		400	{object}	errResponse
//	@Router			/import [post]
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 50<<20)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}

	n, err := h.svc.Import(r.Context(), data)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidFormat) {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid snapshot format"))
		} else {
			slog.Error("import failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if h.broker != nil {
		h.broker.PublishCollectionReplaced("imported", n)
	}
	writeJSON(w, http.StatusOK, ImportResponse{Imported: n})
}

// GateStatus handles GET /api/gate.
//
//	@Summary		Report tap gate state
//	@Tags			gate
//	@Produce		json
//	@Success		200	{object}	GateResponse
//	@Router			/gate [get]
func (h *Handler) GateStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GateResponse{Unlocked: h.keeper.Unlocked()})
}

// GateTap handles POST /api/gate/tap.
//
//	@Summary		Register one tap of the unlock sequence
//	@Tags			gate
//	@Produce		json
//	@Success		200	{object}	GateResponse
//	@Router			/gate/tap [post]
func (h *Handler) GateTap(w http.ResponseWriter, r *http.Request) {
	unlocked, remaining := h.keeper.Tap()
	writeJSON(w, http.StatusOK, GateResponse{Unlocked: unlocked, Remaining: remaining})
}
