// Package model defines the core data structures used throughout urlmap.
//
// This package contains the following main types:
//   - Report: A finished extraction run, sorted and grouped by domain
//   - DomainGroup: All URLs sharing one grouping domain
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extractor, report, database) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
