package router

import (
	"github.com/ogrim/mimir/internal/models"
	"github.com/ogrim/mimir/internal/repository"
)

// Notices surfaced when a route resolves to a redirect instead of a view.
const (
	NoticeEmptyCollection = "No random article to show: the wiki is empty."
	NoticeEditingLocked   = "Editing is locked. Unlock the editor first."
)

// Outcome is the concrete rendering decision for a resolved route: either a
// view (with its argument and resolved article), or a redirect to another
// fragment plus a user-visible notice.
type Outcome struct {
	View     string          `json:"view,omitempty"`
	Arg      string          `json:"arg,omitempty"`
	Article  *models.Article `json:"article,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
	Notice   string          `json:"notice,omitempty"`
}

// Evaluate turns a route into an Outcome against the current collection and
// gate state.
//
//   - random is a pseudo-state: it never renders, it redirects to a concrete
//     article's fragment, or home with a notice when the collection is empty.
//   - edit while the gate is locked redirects home with a notice; the editor
//     is never rendered without the capability.
//   - an article title that does not resolve falls back to the not-found view;
//     this is a rendering decision, not a distinct route.
func Evaluate(route models.Route, repo *repository.Repository, gateUnlocked bool) Outcome {
	switch route.Name {
	case models.ViewHome, models.ViewAbout:
		return Outcome{View: route.Name}

	case models.ViewRandom:
		pick := repo.PickRandom()
		if pick == nil {
			return Outcome{Redirect: HomeFragment, Notice: NoticeEmptyCollection}
		}
		return Outcome{Redirect: Fragment(pick.Title)}

	case models.ViewEdit:
		if !gateUnlocked {
			return Outcome{Redirect: HomeFragment, Notice: NoticeEditingLocked}
		}
		out := Outcome{View: models.ViewEdit, Arg: route.Arg}
		if route.Arg != "" {
			out.Article = repo.FindByTitle(route.Arg)
		}
		return out

	case models.ViewArticle:
		a := repo.FindByTitle(route.Arg)
		if a == nil {
			return Outcome{View: models.ViewNotFound, Arg: route.Arg}
		}
		return Outcome{View: models.ViewArticle, Arg: route.Arg, Article: a}
	}

	return Outcome{View: models.ViewNotFound, Arg: route.Arg}
}
