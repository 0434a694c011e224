// Package main provides the entry point for the urlmap CLI.
//
// urlmap collects URLs from plain text files, HTML bookmark exports, and
// JSON bookmark exports, then writes them to a Markdown report grouped
// by domain.
//
// Usage:
//
//	urlmap extract <path...>
//	urlmap extract notes/ bookmarks.html -o links.md
//
// See --help for all available options.
package main

// main is the entry point for urlmap.
func main() {
	Execute()
}
