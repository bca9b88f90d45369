// Package editor manages the transient state of composing or editing one
// article: the draft title and content, the selection the toolbar operations
// act on, and the save/cancel lifecycle. Nothing here touches the repository
// until Save commits.
package editor

import (
	"github.com/ogrim/mimir/internal/apperr"
	"github.com/ogrim/mimir/internal/models"
	"github.com/ogrim/mimir/internal/repository"
	"github.com/ogrim/mimir/internal/router"
	"github.com/ogrim/mimir/internal/sanitizer"
)

// emptyDraft gives the editing surface a paragraph to type into.
const emptyDraft = "<p></p>"

// Session is one editing session. A zero targetID means a new article is
// being created.
type Session struct {
	repo *repository.Repository

	targetID     string
	DraftTitle   string
	DraftContent string

	selStart, selEnd int
}

// Open starts a session for titleOrEmpty. An existing article seeds edit mode
// with its title and content; otherwise the session is in create mode, with
// the title pre-filled when a non-empty title was given (create via a link to
// a not-yet-existing article).
func Open(repo *repository.Repository, titleOrEmpty string) *Session {
	s := &Session{repo: repo}

	if titleOrEmpty != "" {
		if a := repo.FindByTitle(titleOrEmpty); a != nil {
			s.targetID = a.ID
			s.DraftTitle = a.Title
			s.DraftContent = a.Content
		} else {
			s.DraftTitle = models.NormalizeTitle(titleOrEmpty)
		}
	}
	if s.DraftContent == "" {
		s.DraftContent = emptyDraft
	}
	return s
}

// Editing reports whether the session targets an existing article.
func (s *Session) Editing() bool {
	return s.targetID != ""
}

// TargetID returns the id of the article being edited, or "" in create mode.
func (s *Session) TargetID() string {
	return s.targetID
}

// Save normalizes the draft title, sanitizes the draft content, and commits
// through the repository. apperr.ErrEmptyTitle and apperr.ErrDuplicateTitle
// come back untouched so the caller can re-prompt; nothing is mutated on
// failure. On success the saved article becomes the session target.
func (s *Session) Save() (*models.Article, error) {
	title := models.NormalizeTitle(s.DraftTitle)
	if title == "" {
		return nil, apperr.ErrEmptyTitle
	}

	content := sanitizer.Clean(s.DraftContent)

	var (
		a   *models.Article
		err error
	)
	if s.targetID != "" {
		a, err = s.repo.Update(s.targetID, title, content)
	} else {
		a, err = s.repo.Create(title, content)
	}
	if err != nil {
		return nil, err
	}
	s.targetID = a.ID
	return a, nil
}

// Cancel discards the draft and returns the fragment to navigate to: the
// target article's view when editing, home otherwise. The repository is not
// touched.
func (s *Session) Cancel() string {
	if s.targetID != "" {
		if a := s.repo.FindByID(s.targetID); a != nil {
			return router.Fragment(a.Title)
		}
	}
	return router.HomeFragment
}

// Select sets the selection the insertion operations act on. Offsets are byte
// positions into DraftContent and are clamped to its bounds.
func (s *Session) Select(start, end int) {
	if end < start {
		start, end = end, start
	}
	n := len(s.DraftContent)
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end < 0 {
		end = 0
	}
	if end > n {
		end = n
	}
	s.selStart, s.selEnd = start, end
}

// selection returns the selection re-clamped to the current draft. DraftContent
// is an exported field the editing surface rewrites freely, so a selection set
// before the draft shrank must not index past the new end.
func (s *Session) selection() (start, end int) {
	n := len(s.DraftContent)
	start, end = s.selStart, s.selEnd
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	return start, end
}

// SelectedText returns the currently selected slice of the draft.
func (s *Session) SelectedText() string {
	start, end := s.selection()
	return s.DraftContent[start:end]
}

// insertMarkup replaces the selection with markup and collapses the selection
// after it.
func (s *Session) insertMarkup(markup string) {
	start, end := s.selection()
	s.DraftContent = s.DraftContent[:start] + markup + s.DraftContent[end:]
	s.selStart = start + len(markup)
	s.selEnd = s.selStart
}
