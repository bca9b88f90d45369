// Package testutil provides shared test helpers for seeding article
// collections.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/ogrim/mimir/internal/repository"
	"github.com/ogrim/mimir/internal/wikiservice"
)

// SeededRepo creates a repository pre-filled with articles titled by titles,
// each with a trivial paragraph body.
func SeededRepo(t *testing.T, titles ...string) *repository.Repository {
	t.Helper()
	repo := repository.New()
	for _, title := range titles {
		if _, err := repo.Create(title, "<p>"+title+"</p>"); err != nil {
			t.Fatalf("seed %q: %v", title, err)
		}
	}
	return repo
}

// TempService creates a wiki service backed by a snapshot file in a temp
// directory that is cleaned up with the test.
func TempService(t *testing.T, titles ...string) *wikiservice.Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.json")
	return wikiservice.NewService(SeededRepo(t, titles...), path)
}
