// Package snapshot converts between the in-memory article collection and the
// portable JSON snapshot document, and manages the snapshot file on disk.
package snapshot

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ogrim/mimir/internal/apperr"
	"github.com/ogrim/mimir/internal/models"
)

// Version is the snapshot document version emitted on export.
const Version = 1

// placeholderTitle substitutes a missing or wrong-typed title during repair.
const placeholderTitle = "Untitled"

// Decode parses raw as a snapshot document. Any parse failure or top-level
// shape mismatch yields the empty snapshot: the startup load must never fail.
func Decode(raw []byte) models.Snapshot {
	snap, err := decode(raw, time.Now)
	if err != nil {
		return models.EmptySnapshot()
	}
	return snap
}

// DecodeStrict parses raw for user-initiated import. Field repair is the same
// as Decode, but a top-level value that is not an object, or an articles field
// that is not a list, fails with apperr.ErrInvalidFormat.
func DecodeStrict(raw []byte) (models.Snapshot, error) {
	return decode(raw, time.Now)
}

func decode(raw []byte, now func() time.Time) (models.Snapshot, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return models.Snapshot{}, apperr.ErrInvalidFormat
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(top["articles"], &entries); err != nil {
		return models.Snapshot{}, apperr.ErrInvalidFormat
	}
	if entries == nil {
		// "articles": null unmarshals cleanly but is not a list.
		return models.Snapshot{}, apperr.ErrInvalidFormat
	}

	snap := models.Snapshot{Version: Version, Articles: make([]models.Article, 0, len(entries))}

	var version int
	if err := json.Unmarshal(top["version"], &version); err == nil && version > 0 {
		snap.Version = version
	}
	var exportedAt string
	if err := json.Unmarshal(top["exportedAt"], &exportedAt); err == nil && exportedAt != "" {
		snap.ExportedAt = &exportedAt
	}

	for _, entry := range entries {
		snap.Articles = append(snap.Articles, repair(entry, now))
	}
	return snap, nil
}

// repair produces a fully-populated Article from a partially-populated entry.
// It is the single gap-filling step shared by startup load and import.
func repair(entry json.RawMessage, now func() time.Time) models.Article {
	var in struct {
		ID        any `json:"id"`
		Title     any `json:"title"`
		Content   any `json:"content"`
		CreatedAt any `json:"createdAt"`
		UpdatedAt any `json:"updatedAt"`
	}
	// A non-object entry leaves every field nil and gets rebuilt from scratch.
	_ = json.Unmarshal(entry, &in)

	a := models.Article{}

	if id, ok := in.ID.(string); ok && id != "" {
		a.ID = id
	} else {
		a.ID = uuid.NewString()
	}
	if title, ok := in.Title.(string); ok {
		a.Title = title
	} else {
		a.Title = placeholderTitle
	}
	if content, ok := in.Content.(string); ok {
		a.Content = content
	}
	if created, ok := in.CreatedAt.(string); ok && created != "" {
		a.CreatedAt = created
	} else {
		a.CreatedAt = models.Stamp(now())
	}
	if updated, ok := in.UpdatedAt.(string); ok && updated != "" {
		a.UpdatedAt = updated
	} else {
		a.UpdatedAt = a.CreatedAt
	}
	return a
}

// Encode builds a snapshot document from the collection in its own order,
// every article field verbatim.
func Encode(articles []models.Article, exportedAt string) models.Snapshot {
	out := models.Snapshot{
		Version:  Version,
		Articles: append([]models.Article{}, articles...),
	}
	if exportedAt != "" {
		out.ExportedAt = &exportedAt
	}
	return out
}

// Marshal renders a snapshot as the pretty-printed JSON document used for the
// export download and the on-disk snapshot file.
func Marshal(snap models.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}
