package editor

import (
	"strings"
	"testing"

	"github.com/ogrim/mimir/internal/repository"
	"github.com/ogrim/mimir/internal/testutil"
)

func openDraft(t *testing.T, repo *repository.Repository, content string) *Session {
	t.Helper()
	s := Open(repo, "")
	s.DraftContent = content
	return s
}

func TestInsertInternalLink_ExistingTarget(t *testing.T) {
	s := openDraft(t, testutil.SeededRepo(t, "Target"), "")
	s.Select(0, 0)
	s.InsertInternalLink("  Target ")

	want := `<a data-article-title="Target" href="#/Target">Target</a>`
	if s.DraftContent != want {
		t.Errorf("draft = %q, want %q", s.DraftContent, want)
	}
}

func TestInsertInternalLink_MissingTarget(t *testing.T) {
	s := openDraft(t, repository.New(), "")
	s.Select(0, 0)
	s.InsertInternalLink("Nowhere")

	if !strings.Contains(s.DraftContent, "Nowhere"+missingMarker) {
		t.Errorf("missing marker absent: %q", s.DraftContent)
	}
	if !strings.Contains(s.DraftContent, `data-article-title="Nowhere"`) {
		t.Errorf("data attribute absent: %q", s.DraftContent)
	}
}

func TestInsertInternalLink_SelectionBecomesLabel(t *testing.T) {
	s := openDraft(t, testutil.SeededRepo(t, "Target"), "read this")
	s.Select(0, 9)
	s.InsertInternalLink("Target")

	want := `<a data-article-title="Target" href="#/Target">read this</a>`
	if s.DraftContent != want {
		t.Errorf("draft = %q, want %q", s.DraftContent, want)
	}
}

func TestInsertInternalLink_BlankTitleIsNoop(t *testing.T) {
	s := openDraft(t, repository.New(), "untouched")
	s.InsertInternalLink("   ")
	if s.DraftContent != "untouched" {
		t.Errorf("draft = %q", s.DraftContent)
	}
}

func TestInsertExternalLink(t *testing.T) {
	s := openDraft(t, repository.New(), "")
	s.Select(0, 0)
	s.InsertExternalLink("https://example.com")

	want := `<a href="https://example.com" target="_blank" rel="noopener noreferrer">https://example.com</a>`
	if s.DraftContent != want {
		t.Errorf("draft = %q, want %q", s.DraftContent, want)
	}
}

func TestInsertImage(t *testing.T) {
	s := openDraft(t, repository.New(), "")
	s.Select(0, 0)
	s.InsertImage("pic.png", "A <cat>")

	want := `<figure><img src="pic.png" alt="A &lt;cat&gt;"/><figcaption>A &lt;cat&gt;</figcaption></figure>`
	if s.DraftContent != want {
		t.Errorf("draft = %q, want %q", s.DraftContent, want)
	}
}

func TestInsertQuote(t *testing.T) {
	s := openDraft(t, repository.New(), "wise words here")
	s.Select(0, 10)
	s.InsertQuote()
	if !strings.HasPrefix(s.DraftContent, "<blockquote>wise words</blockquote>") {
		t.Errorf("draft = %q", s.DraftContent)
	}

	empty := openDraft(t, repository.New(), "")
	empty.Select(0, 0)
	empty.InsertQuote()
	if !strings.Contains(empty.DraftContent, quotePlaceholder) {
		t.Errorf("placeholder absent: %q", empty.DraftContent)
	}
}

func TestInsertRule_ReplacesSelection(t *testing.T) {
	s := openDraft(t, repository.New(), "before MIDDLE after")
	s.Select(7, 13)
	s.InsertRule()
	if s.DraftContent != "before <hr/> after" {
		t.Errorf("draft = %q", s.DraftContent)
	}
}

func TestClearFormatting_WholeDraft(t *testing.T) {
	s := openDraft(t, repository.New(), `<p><b>bold</b> and <em>slanted</em></p>`)
	s.ClearFormatting()
	if s.DraftContent != "<p>bold and slanted</p>" {
		t.Errorf("draft = %q", s.DraftContent)
	}
}

func TestClearFormatting_SelectionOnly(t *testing.T) {
	draft := `<b>keep</b>|<b>drop</b>`
	s := openDraft(t, repository.New(), draft)
	s.Select(12, len(draft))
	s.ClearFormatting()
	if s.DraftContent != `<b>keep</b>|drop` {
		t.Errorf("draft = %q", s.DraftContent)
	}
}

func TestInsertQuote_AfterDraftShrink(t *testing.T) {
	s := openDraft(t, repository.New(), "the original, much longer draft body")
	s.Select(10, 30)

	s.DraftContent = "<p></p>"
	s.InsertQuote()
	if !strings.Contains(s.DraftContent, quotePlaceholder) {
		t.Errorf("draft = %q", s.DraftContent)
	}
}

func TestClearFormatting_AfterDraftShrink(t *testing.T) {
	s := openDraft(t, repository.New(), "the original, much longer draft body")
	s.Select(10, 30)

	s.DraftContent = "<b>x</b>"
	s.ClearFormatting()
	if s.DraftContent != "x" {
		t.Errorf("draft = %q", s.DraftContent)
	}
}

func TestStripFormatting(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`<b>x</b>`, "x"},
		{`<span style="color:red"><i>deep</i></span>`, "deep"},
		{`<h2>Title</h2>`, "<h2>Title</h2>"},
		{`<a href="#/T"><strong>label</strong></a>`, `<a href="#/T">label</a>`},
		{`<blockquote><mark>q</mark></blockquote>`, "<blockquote>q</blockquote>"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StripFormatting(c.in); got != c.want {
			t.Errorf("StripFormatting(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDataURL(t *testing.T) {
	if got := DataURL("image/png", []byte{1, 2, 3}); got != "data:image/png;base64,AQID" {
		t.Errorf("DataURL = %q", got)
	}
	if got := DataURL("", []byte("x")); !strings.HasPrefix(got, "data:application/octet-stream;base64,") {
		t.Errorf("default mime: %q", got)
	}
}
