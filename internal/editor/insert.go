package editor

import (
	"encoding/base64"
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/ogrim/mimir/internal/models"
	"github.com/ogrim/mimir/internal/router"
)

// missingMarker is appended to the label of an internal link whose target
// article does not exist yet.
const missingMarker = " (missing)"

// quotePlaceholder fills an inserted blockquote when nothing is selected.
const quotePlaceholder = "Quote…"

// InsertInternalLink inserts a link to another article by title. The link
// carries the target title in a data attribute so it can be re-resolved to a
// route even when the target does not exist yet; such links get a missing
// marker. The selected text becomes the label, falling back to the title.
func (s *Session) InsertInternalLink(title string) {
	t := models.NormalizeTitle(title)
	if t == "" {
		return
	}

	label := strings.TrimSpace(s.SelectedText())
	if label == "" {
		label = t
	}
	if s.repo.FindByTitle(t) == nil {
		label += missingMarker
	}

	s.insertMarkup(fmt.Sprintf(`<a data-article-title="%s" href="%s">%s</a>`,
		stdhtml.EscapeString(t), router.Fragment(t), stdhtml.EscapeString(label)))
}

// InsertExternalLink inserts a link that opens in a new browsing context with
// no back-reference to the editor's origin.
func (s *Session) InsertExternalLink(url string) {
	if strings.TrimSpace(url) == "" {
		return
	}

	label := strings.TrimSpace(s.SelectedText())
	if label == "" {
		label = url
	}

	s.insertMarkup(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		stdhtml.EscapeString(url), stdhtml.EscapeString(label)))
}

// InsertImage inserts a captioned figure. src may be a regular URL or a data
// URL produced by DataURL.
func (s *Session) InsertImage(src, caption string) {
	if strings.TrimSpace(src) == "" {
		return
	}
	cap := stdhtml.EscapeString(caption)
	s.insertMarkup(fmt.Sprintf(`<figure><img src="%s" alt="%s"/><figcaption>%s</figcaption></figure>`,
		stdhtml.EscapeString(src), cap, cap))
}

// InsertQuote wraps the selection in a blockquote, or inserts a placeholder
// quote when nothing is selected.
func (s *Session) InsertQuote() {
	text := strings.TrimSpace(s.SelectedText())
	if text == "" {
		text = quotePlaceholder
	}
	s.insertMarkup("<blockquote>" + stdhtml.EscapeString(text) + "</blockquote>")
}

// InsertRule inserts a section break.
func (s *Session) InsertRule() {
	s.insertMarkup("<hr/>")
}

// ClearFormatting strips inline formatting from the selection, or from the
// whole draft when the selection is empty.
func (s *Session) ClearFormatting() {
	start, end := s.selection()
	if end > start {
		cleared := StripFormatting(s.DraftContent[start:end])
		s.DraftContent = s.DraftContent[:start] + cleared + s.DraftContent[end:]
		s.selStart = start
		s.selEnd = start + len(cleared)
		return
	}
	s.DraftContent = StripFormatting(s.DraftContent)
	s.selStart, s.selEnd = 0, 0
}

// DataURL converts picked-file bytes into an embeddable data URL for inline
// images.
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
