// Package database provides SQLite-based storage for extraction run history.
//
// Every extraction run can be recorded: when it ran, which inputs it
// processed, where the report went, and the full URL set with grouping
// domains. The history subcommand reads this data back for listing and
// inspection.
//
// Design decision: We use modernc.org/sqlite (pure Go, no cgo) so the
// binary stays a single static artifact. The database lives under the
// XDG data directory and is shared by all runs.
package database
