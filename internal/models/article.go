// Package models defines the domain types for Mimir.
package models

import (
	"strings"
	"time"
)

// TimeLayout is the millisecond-precision UTC timestamp format used for
// article timestamps. Lexicographic order equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Stamp formats t as a sortable UTC timestamp string.
func Stamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Article is the sole persisted entity: one wiki page.
type Article struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Snapshot is the portable JSON representation of the whole collection.
type Snapshot struct {
	Version    int       `json:"version"`
	ExportedAt *string   `json:"exportedAt"`
	Articles   []Article `json:"articles"`
}

// EmptySnapshot returns the fallback value used when no snapshot file exists
// or its content cannot be parsed.
func EmptySnapshot() Snapshot {
	return Snapshot{Version: 1, ExportedAt: nil, Articles: []Article{}}
}

// NormalizeTitle trims the title and collapses internal whitespace runs to
// single spaces. Titles are compared case-sensitively after normalization.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(title), " ")
}

// View names for the route resolver.
const (
	ViewHome     = "home"
	ViewAbout    = "about"
	ViewRandom   = "random"
	ViewEdit     = "edit"
	ViewArticle  = "article"
	ViewNotFound = "notFound"
)

// Route is a named view plus an optional argument, derived from the location
// fragment. It is never stored.
type Route struct {
	Name string `json:"name"`
	Arg  string `json:"arg,omitempty"`
}
