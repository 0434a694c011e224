package report

import (
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/urlmap/internal/model"
)

// timestampFormat is the generation-timestamp layout in report headers.
const timestampFormat = "2006-01-02 15:04:05"

// MarkdownWriter outputs reports as a domain-grouped Markdown document.
// This is the primary output format, designed for reading and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Consistent heading and list rendering
// 3. A single Build step so partial documents are never flushed
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format: a top-level heading, the
// generation timestamp and total count, then one level-2 section per
// domain with a link-list item per URL.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Extracted URLs")
	md.PlainText("")
	md.PlainTextf("*Generated on: %s*", report.GeneratedAt.Format(timestampFormat))
	md.PlainTextf("*Total unique URLs: %d*", report.Total)
	md.PlainText("")

	for _, group := range report.Groups {
		md.H2(group.Domain)
		md.PlainText("")

		items := make([]string, 0, len(group.URLs))
		for _, u := range group.URLs {
			items = append(items, markdown.Link(u, u))
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}
