package extractor

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractFromHTMLBookmarks extracts URLs from an HTML bookmark export
// (the NETSCAPE-Bookmark-file format written by Chrome and Firefox).
//
// Every anchor element with an href attribute whose value starts with
// http:// or https:// contributes that value verbatim. Relative links,
// mailto: and javascript: hrefs are ignored.
//
// Design decision: We use golang.org/x/net/html rather than regex because
// bookmark exports are reliably malformed (unclosed <DT> and <p> tags are
// part of the format) and the parser handles them the way browsers do.
// Parse errors are reported to the caller; a read failure is returned so
// the file can be skipped without aborting the run.
func (c *Collector) ExtractFromHTMLBookmarks(path string) error {
	content, err := readTextFile(path)
	if err != nil {
		return err
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		// html.Parse recovers from malformed markup, so this only
		// triggers on reader failures. Treat it like a parse error:
		// warn and skip the file.
		c.printf("Error parsing HTML in %s: %v\n", path, err)
		return nil
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAttr(n, "href"); hasURLScheme(href) {
				c.Add(href)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return nil
}

// getAttr returns the value of the named attribute, or "" if absent.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
