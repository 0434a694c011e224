package extractor

import "regexp"

// urlPattern matches URL-looking tokens in free text: anything beginning
// with http://, https://, or www. up to the next whitespace, quote, or
// angle bracket. Matches are collected verbatim with no further
// validation, so trailing punctuation stays attached. This mirrors how
// URLs are usually pasted into notes and chat logs, where a stricter
// pattern would drop more real links than it cleans up.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+|www\.[^\s<>"]+`)

// ExtractFromText scans free-form text and adds every URL-looking token
// to the set. Repeated occurrences collapse into a single entry.
func (c *Collector) ExtractFromText(content string) {
	for _, match := range urlPattern.FindAllString(content, -1) {
		c.Add(match)
	}
}
