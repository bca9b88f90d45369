// Package router maps location fragments to named views and decides what the
// client should render. Navigation state lives entirely in the fragment:
// components change the fragment and let the resolver react, which keeps a
// single source of truth and makes back/forward navigation trivial.
package router

import (
	"net/url"
	"strings"

	"github.com/ogrim/mimir/internal/models"
)

// Resolve derives a route from a location fragment. It is a pure function of
// the fragment string.
//
// Syntax: "#/" home, "#/about", "#/random", "#/edit" or "#/edit/<title>",
// anything else is "#/<title>" viewing an article by title.
func Resolve(fragment string) models.Route {
	raw := strings.TrimPrefix(fragment, "#")
	raw = strings.TrimPrefix(raw, "/")
	if raw == "" {
		return models.Route{Name: models.ViewHome}
	}

	parts := strings.Split(raw, "/")
	head := decode(parts[0])

	switch head {
	case "":
		return models.Route{Name: models.ViewHome}
	case "about":
		return models.Route{Name: models.ViewAbout}
	case "random":
		return models.Route{Name: models.ViewRandom}
	case "edit":
		title := decode(strings.Join(parts[1:], "/"))
		return models.Route{Name: models.ViewEdit, Arg: title}
	}

	return models.Route{Name: models.ViewArticle, Arg: decode(raw)}
}

// Fragment builds the location fragment for an article title.
func Fragment(title string) string {
	return "#/" + url.PathEscape(title)
}

// EditFragment builds the location fragment for editing an article title;
// an empty title yields the new-article editor.
func EditFragment(title string) string {
	if title == "" {
		return "#/edit"
	}
	return "#/edit/" + url.PathEscape(title)
}

// HomeFragment is the fragment for the home view.
const HomeFragment = "#/"

// decode percent-decodes s, falling back to the raw string when the escape
// sequences are malformed (a typo in the address bar must not break routing).
func decode(s string) string {
	out, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return out
}
