package extractor

import (
	"encoding/json"
	"os"

	"github.com/kaptinlin/jsonrepair"
)

// ExtractFromJSONBookmarks extracts URLs from a JSON bookmark export.
//
// The parsed document is walked recursively. An object entry whose key is
// one of the URL keys (url, URL, href, link by default) and whose value
// is a string starting with http:// or https:// is collected, and the
// walk then descends into every value regardless of its key, so URLs are
// found in unlabeled strings too. Array elements are walked; bare strings
// starting with a URL scheme are collected; other scalars are ignored.
//
// Malformed JSON is first run through jsonrepair and re-parsed, since
// bookmark exports often carry trailing commas or stray control bytes.
// If repair fails too, the file is reported as invalid and skipped.
func (c *Collector) ExtractFromJSONBookmarks(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			c.printf("Warning: %s is not a valid JSON file\n", path)
			c.logger.Debug("JSON repair failed", "path", path,
				"parseError", err, "repairError", repairErr)
			return nil
		}
		if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
			c.printf("Warning: %s is not a valid JSON file\n", path)
			c.logger.Debug("repaired JSON still invalid", "path", path, "error", err)
			return nil
		}
		c.logger.Debug("recovered malformed JSON", "path", path)
	}

	c.walkJSON(doc)
	return nil
}

// walkJSON recursively visits a decoded JSON document and collects URLs.
func (c *Collector) walkJSON(v any) {
	switch value := v.(type) {
	case map[string]any:
		for key, child := range value {
			if _, ok := c.urlKeys[key]; ok {
				if s, ok := child.(string); ok && hasURLScheme(s) {
					c.Add(s)
				}
			}
			// Descend regardless of the key so URLs nested under
			// arbitrary keys are still found.
			c.walkJSON(child)
		}
	case []any:
		for _, child := range value {
			c.walkJSON(child)
		}
	case string:
		if hasURLScheme(value) {
			c.Add(value)
		}
	}
}
