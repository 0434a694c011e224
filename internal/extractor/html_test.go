package extractor

import (
	"strings"
	"testing"
)

// TestExtractFromHTMLBookmarks tests href extraction from bookmark exports.
func TestExtractFromHTMLBookmarks(t *testing.T) {
	t.Parallel()

	t.Run("collects absolute http and https hrefs only", func(t *testing.T) {
		t.Parallel()

		content := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
  <DT><A HREF="https://go.dev/doc">Go docs</A>
  <DT><A HREF="http://example.com/page">Example</A>
  <DT><A HREF="mailto:someone@example.com">Mail</A>
  <DT><A HREF="/relative/path">Relative</A>
  <DT><A HREF="javascript:void(0)">JS</A>
  <DT><A>No href</A>
</DL><p>`

		dir := t.TempDir()
		path := writeFile(t, dir, "bookmarks.html", content)

		c, _ := newTestCollector(t)
		if err := c.ExtractFromHTMLBookmarks(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if c.Len() != 2 {
			t.Errorf("got %d URLs (%v), expected 2", c.Len(), c.URLs())
		}
		for _, u := range []string{"https://go.dev/doc", "http://example.com/page"} {
			if !c.Has(u) {
				t.Errorf("expected %q to be collected", u)
			}
		}
		for _, u := range []string{"mailto:someone@example.com", "/relative/path", "javascript:void(0)"} {
			if c.Has(u) {
				t.Errorf("did not expect %q to be collected", u)
			}
		}
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		// Unclosed tags and stray brackets, as real exports have.
		content := `<DL><DT><a href="https://a.com/x">broken
<dt><A HREF='https://b.com/y'>also broken<p></b></DL>`

		dir := t.TempDir()
		path := writeFile(t, dir, "broken.htm", content)

		c, _ := newTestCollector(t)
		if err := c.ExtractFromHTMLBookmarks(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !c.Has("https://a.com/x") || !c.Has("https://b.com/y") {
			t.Errorf("expected both URLs from malformed markup, got %v", c.URLs())
		}
	})

	t.Run("latin-1 content is decoded", func(t *testing.T) {
		t.Parallel()

		// 0xE9 is "é" in Latin-1 and invalid as a standalone UTF-8 byte.
		content := "<a href=\"https://caf\xe9.example.com/\">caf\xe9</a>"
		dir := t.TempDir()
		path := writeFile(t, dir, "latin1.html", content)

		c, _ := newTestCollector(t)
		if err := c.ExtractFromHTMLBookmarks(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Len() != 1 {
			t.Fatalf("got %d URLs, expected 1", c.Len())
		}
		if !strings.Contains(c.URLs()[0], "café") {
			t.Errorf("expected decoded é in %q", c.URLs()[0])
		}
	})

	t.Run("read failure is returned", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestCollector(t)
		if err := c.ExtractFromHTMLBookmarks(t.TempDir() + "/missing.html"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
