// Package config provides configuration management for urlmap.
//
// Configuration comes from two places: CLI flags, which populate the
// Config struct directly, and an optional .urlmap YAML file discovered
// in the current directory or the user's home directory. Flags always
// win over file values, and with no file present the defaults match the
// built-in behavior exactly.
//
// Design decision: We use a single flat Config struct populated via
// dependency injection rather than global state. The option count is
// small enough that nesting would add complexity without benefit.
package config
