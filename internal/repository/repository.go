// Package repository owns the canonical in-memory article collection.
//
// The collection is an ordered-insertion slice with linear scans: the expected
// scale is a personal or small-team wiki, and the only durable representation
// is the JSON snapshot the user exports. A RWMutex guards against concurrent
// HTTP readers; all writes go through the methods below.
package repository

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ogrim/mimir/internal/apperr"
	"github.com/ogrim/mimir/internal/models"
)

// Repository holds the article collection for the process lifetime.
type Repository struct {
	mu       sync.RWMutex
	articles []models.Article

	now  func() time.Time
	intn func(n int) int
}

// New creates an empty repository.
func New() *Repository {
	return &Repository{
		now:  time.Now,
		intn: rand.Intn,
	}
}

// WithClock overrides the clock (tests).
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

// WithRand overrides the random source (tests).
func (r *Repository) WithRand(intn func(n int) int) *Repository {
	r.intn = intn
	return r
}

// FindByTitle returns the article whose normalized title matches title, or
// nil. The query is normalized the same way stored titles are.
func (r *Repository) FindByTitle(title string) *models.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByTitleLocked(title)
}

func (r *Repository) findByTitleLocked(title string) *models.Article {
	want := models.NormalizeTitle(title)
	for i := range r.articles {
		if models.NormalizeTitle(r.articles[i].Title) == want {
			a := r.articles[i]
			return &a
		}
	}
	return nil
}

// FindByID returns the article with the given id, or nil.
func (r *Repository) FindByID(id string) *models.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOfLocked(id); i >= 0 {
		a := r.articles[i]
		return &a
	}
	return nil
}

func (r *Repository) indexOfLocked(id string) int {
	for i := range r.articles {
		if r.articles[i].ID == id {
			return i
		}
	}
	return -1
}

// Create appends a new article with a fresh id and both timestamps set to
// now. The title must be non-empty after normalization and unique
// (case-sensitive, post-normalization) across the collection.
func (r *Repository) Create(title, content string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	normalized := models.NormalizeTitle(title)
	if normalized == "" {
		return nil, apperr.ErrEmptyTitle
	}
	if r.findByTitleLocked(normalized) != nil {
		return nil, apperr.ErrDuplicateTitle
	}

	stamp := models.Stamp(r.now())
	a := models.Article{
		ID:        uuid.NewString(),
		Title:     normalized,
		Content:   content,
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
	r.articles = append(r.articles, a)
	return &a, nil
}

// Update replaces title and content of the article with the given id and
// stamps updatedAt. createdAt is left untouched. The duplicate-title rule
// excludes the article's own id.
func (r *Repository) Update(id, title, content string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfLocked(id)
	if i < 0 {
		return nil, apperr.ErrNotFound
	}

	normalized := models.NormalizeTitle(title)
	if normalized == "" {
		return nil, apperr.ErrEmptyTitle
	}
	if existing := r.findByTitleLocked(normalized); existing != nil && existing.ID != id {
		return nil, apperr.ErrDuplicateTitle
	}

	r.articles[i].Title = normalized
	r.articles[i].Content = content
	r.articles[i].UpdatedAt = models.Stamp(r.now())
	a := r.articles[i]
	return &a, nil
}

// List returns articles sorted by updatedAt descending (stable for equal
// stamps). A non-empty query filters by case-insensitive title substring.
func (r *Repository) List(query string) []models.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if q != "" && !strings.Contains(strings.ToLower(a.Title), q) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out
}

// PickRandom returns a uniformly chosen article, or nil when empty.
func (r *Repository) PickRandom() *models.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.articles) == 0 {
		return nil
	}
	a := r.articles[r.intn(len(r.articles))]
	return &a
}

// ReplaceAll swaps the entire collection (snapshot load, import, reload).
func (r *Repository) ReplaceAll(articles []models.Article) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles = append([]models.Article(nil), articles...)
}

// All returns a copy of the collection in insertion order.
func (r *Repository) All() []models.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Article(nil), r.articles...)
}

// Len returns the number of articles.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.articles)
}
