package api

import (
	"github.com/ogrim/mimir/internal/router"
	"github.com/ogrim/mimir/internal/wikiservice"
)

// CreateArticleRequest is the body of POST /api/articles.
type CreateArticleRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// UpdateArticleRequest is the body of PUT /api/articles/{id}.
type UpdateArticleRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// ArticleListResponse is the body of GET /api/articles.
type ArticleListResponse struct {
	Articles []wikiservice.ArticleListItem `json:"articles"`
	Total    int                           `json:"total"`
}

// ResolveResponse is the body of GET /api/resolve.
type ResolveResponse struct {
	router.Outcome
}

// GateResponse reports tap gate state.
type GateResponse struct {
	Unlocked  bool `json:"unlocked"`
	Remaining int  `json:"remaining"`
}

// ImportResponse is the body of a successful POST /api/import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ImageResponse is the body of a successful POST /api/images.
type ImageResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	DataURL  string `json:"dataUrl"`
	Markup   string `json:"markup"`
}
