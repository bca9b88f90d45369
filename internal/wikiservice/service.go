// Package wikiservice coordinates the repository, the sanitizer, and the
// snapshot codec behind one API used by both the HTTP handlers and the MCP
// server.
package wikiservice

import (
	"context"
	"time"

	"github.com/ogrim/mimir/internal/apperr"
	"github.com/ogrim/mimir/internal/checksum"
	"github.com/ogrim/mimir/internal/models"
	"github.com/ogrim/mimir/internal/repository"
	"github.com/ogrim/mimir/internal/router"
	"github.com/ogrim/mimir/internal/sanitizer"
	"github.com/ogrim/mimir/internal/snapshot"
)

// ArticleDetail is the full representation of an article.
type ArticleDetail struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Checksum  string `json:"checksum"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ArticleListItem is a lightweight item in a list response.
type ArticleListItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Checksum  string `json:"checksum"`
	UpdatedAt string `json:"updatedAt"`
}

// Service coordinates collection and snapshot operations.
type Service struct {
	repo *repository.Repository
	path string
}

// NewService creates a wiki service. path is the snapshot file written after
// each mutation; an empty path disables persistence.
func NewService(repo *repository.Repository, path string) *Service {
	return &Service{repo: repo, path: path}
}

// GetArticle looks an article up by title.
func (s *Service) GetArticle(_ context.Context, title string) (*ArticleDetail, error) {
	a := s.repo.FindByTitle(title)
	if a == nil {
		return nil, apperr.ErrNotFound
	}
	return detail(a), nil
}

// GetByID looks an article up by id.
func (s *Service) GetByID(_ context.Context, id string) (*ArticleDetail, error) {
	a := s.repo.FindByID(id)
	if a == nil {
		return nil, apperr.ErrNotFound
	}
	return detail(a), nil
}

// ListArticles returns articles newest-first, optionally filtered by a
// case-insensitive title substring.
func (s *Service) ListArticles(_ context.Context, query string) []ArticleListItem {
	rows := s.repo.List(query)
	items := make([]ArticleListItem, len(rows))
	for i, a := range rows {
		items[i] = ArticleListItem{
			ID:        a.ID,
			Title:     a.Title,
			Checksum:  checksum.Sum([]byte(a.Content)),
			UpdatedAt: a.UpdatedAt,
		}
	}
	return items
}

// CreateArticle sanitizes content and adds a new article.
func (s *Service) CreateArticle(_ context.Context, title, content string) (*ArticleDetail, error) {
	a, err := s.repo.Create(title, sanitizer.Clean(content))
	if err != nil {
		return nil, err
	}
	if err := s.Persist(); err != nil {
		return nil, err
	}
	return detail(a), nil
}

// UpdateArticle sanitizes content and updates an article with optimistic
// concurrency: a non-empty ifMatch must equal the checksum of the stored
// content or the update is rejected.
func (s *Service) UpdateArticle(_ context.Context, id, title, content, ifMatch string) (*ArticleDetail, error) {
	existing := s.repo.FindByID(id)
	if existing == nil {
		return nil, apperr.ErrNotFound
	}
	if ifMatch != "" && ifMatch != checksum.Sum([]byte(existing.Content)) {
		return nil, apperr.ErrConflict
	}

	a, err := s.repo.Update(id, title, sanitizer.Clean(content))
	if err != nil {
		return nil, err
	}
	if err := s.Persist(); err != nil {
		return nil, err
	}
	return detail(a), nil
}

// RandomArticle returns a uniformly chosen article.
func (s *Service) RandomArticle(_ context.Context) (*ArticleDetail, error) {
	a := s.repo.PickRandom()
	if a == nil {
		return nil, apperr.ErrNotFound
	}
	return detail(a), nil
}

// Resolve maps a location fragment to a view outcome.
func (s *Service) Resolve(_ context.Context, fragment string, gateUnlocked bool) router.Outcome {
	return router.Evaluate(router.Resolve(fragment), s.repo, gateUnlocked)
}

// Export serializes the whole collection as an indented snapshot with an
// export timestamp.
func (s *Service) Export(_ context.Context) ([]byte, error) {
	return snapshot.Marshal(snapshot.Encode(s.repo.All(), models.Stamp(time.Now())))
}

// Import replaces the collection with the articles of a strict-decoded
// snapshot and returns the imported article count. The snapshot file is
// written before the in-memory collection is swapped, so a decode or persist
// failure leaves the collection untouched.
func (s *Service) Import(_ context.Context, raw []byte) (int, error) {
	snap, err := snapshot.DecodeStrict(raw)
	if err != nil {
		return 0, err
	}
	if s.path != "" {
		data, err := snapshot.Marshal(snapshot.Encode(snap.Articles, ""))
		if err != nil {
			return 0, err
		}
		if err := snapshot.WriteFile(s.path, data); err != nil {
			return 0, err
		}
	}
	s.repo.ReplaceAll(snap.Articles)
	return len(snap.Articles), nil
}

// ReloadFromDisk replaces the collection with the snapshot file's content.
// Used at startup and by the file watcher. A missing or unreadable file
// leaves an empty collection.
func (s *Service) ReloadFromDisk(_ context.Context) (int, bool) {
	if s.path == "" {
		return 0, false
	}
	snap, ok := snapshot.LoadFile(s.path)
	s.repo.ReplaceAll(snap.Articles)
	return len(snap.Articles), ok
}

// Persist writes the current collection to the snapshot file.
func (s *Service) Persist() error {
	if s.path == "" {
		return nil
	}
	data, err := snapshot.Marshal(snapshot.Encode(s.repo.All(), ""))
	if err != nil {
		return err
	}
	return snapshot.WriteFile(s.path, data)
}

func detail(a *models.Article) *ArticleDetail {
	return &ArticleDetail{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Checksum:  checksum.Sum([]byte(a.Content)),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
