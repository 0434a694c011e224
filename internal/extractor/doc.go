// Package extractor collects URLs from plain text, HTML bookmark exports,
// and JSON bookmark exports.
//
// The package is designed around the Collector type, which walks input
// paths, dispatches each file to a format-specific extraction routine
// based on its extension, and accumulates unique URLs in an in-memory set.
//
// Errors are isolated at file granularity: a file that cannot be read or
// parsed is logged and skipped, and the run continues with the next file.
// The Collector never aborts a run because of a single bad input.
package extractor
