package sanitizer

import (
	"strings"
	"testing"
)

func TestClean_RemovesScriptElements(t *testing.T) {
	in := `<p>before</p><script>alert(1)</script><p>after</p>`
	out := Clean(in)
	if strings.Contains(out, "script") || strings.Contains(out, "alert") {
		t.Errorf("script survived: %q", out)
	}
	if !strings.Contains(out, "<p>before</p>") || !strings.Contains(out, "<p>after</p>") {
		t.Errorf("benign content lost: %q", out)
	}
}

func TestClean_RemovesNestedScript(t *testing.T) {
	in := `<div><blockquote><script src="x.js"></script>quote</blockquote></div>`
	out := Clean(in)
	if strings.Contains(out, "script") {
		t.Errorf("nested script survived: %q", out)
	}
	if !strings.Contains(out, "quote") {
		t.Errorf("quote text lost: %q", out)
	}
}

func TestClean_RemovesEventHandlerAttributes(t *testing.T) {
	in := `<p onclick="evil()" onmouseover="evil()" class="x">hi</p>`
	out := Clean(in)
	if strings.Contains(out, "onclick") || strings.Contains(out, "onmouseover") {
		t.Errorf("handler attribute survived: %q", out)
	}
	if !strings.Contains(out, `class="x"`) {
		t.Errorf("benign attribute lost: %q", out)
	}
}

func TestClean_RemovesScriptSchemeURLs(t *testing.T) {
	cases := []string{
		`<a href="javascript:evil()">x</a>`,
		`<a href=" JaVaScRiPt:evil() ">x</a>`,
		`<img src="javascript:evil()"/>`,
	}
	for _, in := range cases {
		out := Clean(in)
		if strings.Contains(strings.ToLower(out), "javascript:") {
			t.Errorf("Clean(%q) = %q, script scheme survived", in, out)
		}
	}
}

func TestClean_KeepsSafeLinks(t *testing.T) {
	in := `<a href="https://example.com" rel="noopener noreferrer">x</a>`
	out := Clean(in)
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Errorf("safe href lost: %q", out)
	}
}

func TestClean_PreservesBenignStructure(t *testing.T) {
	in := `<h2 id="intro">Intro</h2><p><em>em</em> and <strong>strong</strong></p><blockquote>q</blockquote><hr/><figure><img src="https://x/y.png" alt="cap"/><figcaption>cap</figcaption></figure>`
	out := Clean(in)
	if out != in {
		t.Errorf("benign markup changed:\n in: %q\nout: %q", in, out)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		`<p onclick="x">a</p><script>b</script>`,
		`<h2>t</h2><a href="javascript:void(0)">l</a>`,
		`plain text with <b>bold</b>`,
		``,
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestClean_TotalOnGarbage(t *testing.T) {
	// Unbalanced and hostile input must still produce a fragment, not panic.
	out := Clean(`<div><p onclick=<script>alert(1)`)
	if strings.Contains(out, "alert(1)") && strings.Contains(out, "<script") {
		t.Errorf("hostile input leaked executable markup: %q", out)
	}
}
