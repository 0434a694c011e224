package extractor

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// defaultURLKeys are the JSON object keys whose string values are treated
// as URL carriers. The comparison is case-sensitive: "url" and "URL" are
// both listed because browser exports disagree on the casing, but "Url"
// is intentionally not matched.
var defaultURLKeys = []string{"url", "URL", "href", "link"}

// defaultWalkExtensions are the file extensions visited during a directory
// walk. Files with other extensions are silently skipped.
var defaultWalkExtensions = []string{".txt", ".md", ".markdown", ".json", ".html", ".htm"}

// Collector accumulates unique URLs from a set of input files.
//
// Uniqueness is by exact textual match: no normalization is applied, so
// "http://x.com" and "http://x.com/" are distinct entries. The set grows
// monotonically during a run and is discarded when the process exits.
//
// Design decision: We keep a single flat string set rather than parsed URL
// structures because every extraction rule operates on the raw text and
// the report sorts on raw strings. Parsing happens once, at render time.
type Collector struct {
	// urls is the unique URL set. Map keys are the verbatim matched strings.
	urls map[string]struct{}

	// urlKeys are the JSON keys whose string values are collected directly.
	urlKeys map[string]struct{}

	// walkExts are the lowercase extensions visited by ProcessDirectory.
	walkExts []string

	// progress receives user-facing progress and warning lines.
	// Defaults to os.Stdout.
	progress io.Writer

	// logger receives diagnostic output.
	logger *slog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithProgress sets the destination for user-facing progress lines.
func WithProgress(w io.Writer) Option {
	return func(c *Collector) {
		c.progress = w
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithURLKeys adds JSON object keys to the built-in URL key list.
// The built-in keys (url, URL, href, link) are always matched.
func WithURLKeys(keys ...string) Option {
	return func(c *Collector) {
		for _, k := range keys {
			c.urlKeys[k] = struct{}{}
		}
	}
}

// WithWalkExtensions adds file extensions (with leading dot) to the set
// visited during directory walks. Extensions are matched case-insensitively.
func WithWalkExtensions(exts ...string) Option {
	return func(c *Collector) {
		for _, ext := range exts {
			c.walkExts = append(c.walkExts, strings.ToLower(ext))
		}
	}
}

// NewCollector creates a Collector with an empty URL set.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		urls:     make(map[string]struct{}),
		urlKeys:  make(map[string]struct{}, len(defaultURLKeys)),
		walkExts: append([]string(nil), defaultWalkExtensions...),
		progress: os.Stdout,
		logger:   slog.Default(),
	}
	for _, k := range defaultURLKeys {
		c.urlKeys[k] = struct{}{}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add records a URL verbatim. Repeats are absorbed by the set.
func (c *Collector) Add(url string) {
	c.urls[url] = struct{}{}
}

// Has reports whether the exact string is in the set.
func (c *Collector) Has(url string) bool {
	_, ok := c.urls[url]
	return ok
}

// Len returns the number of unique URLs collected so far.
func (c *Collector) Len() int {
	return len(c.urls)
}

// URLs returns the collected URLs in sorted order.
// The result is a copy; mutating it does not affect the set.
func (c *Collector) URLs() []string {
	urls := make([]string, 0, len(c.urls))
	for u := range c.urls {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// ProcessPath processes a single input path. Regular files are processed
// directly, directories are walked recursively, and anything else (missing
// paths included) is reported as a warning and skipped.
func (c *Collector) ProcessPath(path string) {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		c.printf("Warning: %s does not exist or is not accessible\n", path)
		c.logger.Debug("stat failed", "path", path, "error", err)
	case info.IsDir():
		c.ProcessDirectory(path)
	case info.Mode().IsRegular():
		c.ProcessFile(path)
	default:
		c.printf("Warning: %s does not exist or is not accessible\n", path)
		c.logger.Debug("not a regular file", "path", path, "mode", info.Mode())
	}
}

// ProcessFile extracts URLs from a single file, dispatching on its
// lowercase extension: .json files get JSON extraction, .html and .htm
// files get HTML extraction, and everything else is scanned as plain text.
//
// Extraction errors are logged and swallowed. On success a cumulative
// unique-count line is printed, so a multi-file run shows the set growing.
func (c *Collector) ProcessFile(path string) {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = c.ExtractFromJSONBookmarks(path)
	case ".html", ".htm":
		err = c.ExtractFromHTMLBookmarks(path)
	default:
		var content string
		content, err = readTextFile(path)
		if err == nil {
			c.ExtractFromText(content)
		}
	}

	if err != nil {
		c.printf("Error processing %s: %v\n", path, err)
		c.logger.Debug("file skipped", "path", path, "error", err)
		return
	}

	c.printf("Processed: %s - Found %d unique URLs so far\n", path, c.Len())
}

// ProcessDirectory recursively walks a directory tree and processes every
// regular file whose lowercase name ends in a supported extension.
// Walk errors are logged and the walk continues with the remaining entries.
func (c *Collector) ProcessDirectory(dir string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.printf("Error processing %s: %v\n", path, err)
			c.logger.Debug("walk error", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if c.supportedExtension(d.Name()) {
			c.ProcessFile(path)
		}
		return nil
	})
	if err != nil {
		// WalkDir only returns an error from the callback, which always
		// returns nil above, but guard against future changes.
		c.printf("Error processing %s: %v\n", dir, err)
	}
}

// supportedExtension reports whether a file name ends in one of the
// extensions visited during a directory walk.
func (c *Collector) supportedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range c.walkExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// hasURLScheme reports whether s starts with "http://" or "https://".
func hasURLScheme(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// printf writes a user-facing progress or warning line.
func (c *Collector) printf(format string, args ...any) {
	fmt.Fprintf(c.progress, format, args...)
}
