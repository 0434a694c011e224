package model

import (
	"net/url"
	"sort"
	"strings"
	"time"
)

// Report holds the result of one extraction run, ready for rendering.
// URLs are sorted by (domain, URL) and grouped by domain; group order
// follows the sort, so groups appear in lexicographic domain order with
// the unparsable (empty-domain) group first.
type Report struct {
	// GeneratedAt is the local time the report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Total is the number of unique URLs across all groups.
	Total int `json:"total"`

	// Groups contains the URLs grouped by domain, in sorted order.
	Groups []DomainGroup `json:"groups"`
}

// DomainGroup is the set of URLs that share one grouping domain.
type DomainGroup struct {
	// Domain is the grouping key: the URL host with a leading "www."
	// stripped. Empty for URLs without a parsable host (for example
	// bare "www.example.com/x" matches without a scheme).
	Domain string `json:"domain"`

	// URLs are the group members in lexicographic order.
	URLs []string `json:"urls"`
}

// Domain returns the grouping domain for a raw URL string.
// It is the host component with a leading "www." removed, so
// "http://www.example.com/a" and "http://example.com/b" group together.
// URLs that cannot be parsed, or that parse without a host, map to "".
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// NewReport builds a Report from a flat collection of unique URLs.
// The input order does not matter; the report is fully determined by
// the set contents and the clock.
func NewReport(urls []string) *Report {
	sorted := make([]string, len(urls))
	copy(sorted, urls)

	// Composite sort key (domain, URL), both compared byte-wise.
	domains := make(map[string]string, len(sorted))
	for _, u := range sorted {
		domains[u] = Domain(u)
	}
	sort.Slice(sorted, func(i, j int) bool {
		di, dj := domains[sorted[i]], domains[sorted[j]]
		if di != dj {
			return di < dj
		}
		return sorted[i] < sorted[j]
	})

	report := &Report{
		GeneratedAt: time.Now(),
		Total:       len(sorted),
		Groups:      make([]DomainGroup, 0),
	}

	for _, u := range sorted {
		d := domains[u]
		if n := len(report.Groups); n > 0 && report.Groups[n-1].Domain == d {
			report.Groups[n-1].URLs = append(report.Groups[n-1].URLs, u)
			continue
		}
		report.Groups = append(report.Groups, DomainGroup{
			Domain: d,
			URLs:   []string{u},
		})
	}

	return report
}

// IsEmpty reports whether the run collected no URLs at all.
// Empty reports must not be written to disk.
func (r *Report) IsEmpty() bool {
	return r.Total == 0
}
