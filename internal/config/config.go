package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultOutputFile is the Markdown report path when -o is not given.
	DefaultOutputFile = "extracted_urls.md"

	// AppName is the application name used for XDG directory paths.
	AppName = "urlmap"
)

// Config holds all configuration options for an extraction run.
// This struct is populated from CLI flags and the optional config file,
// then passed through the application via dependency injection.
type Config struct {
	// Inputs are the file or directory paths to process, in CLI order.
	Inputs []string

	// OutputPath is the report destination. The file is always
	// overwritten when the run finds at least one URL; an empty result
	// leaves it untouched.
	OutputPath string

	// JSONReport renders the report as JSON instead of Markdown.
	JSONReport bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .urlmap in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// File holds values loaded from the configuration file, if any.
	File *File

	// SaveHistory records the run in the history database.
	// History failures never fail the run; they are logged and skipped.
	SaveHistory bool

	// HistoryDir is the directory holding the history database.
	// Defaults to the XDG data directory for urlmap.
	HistoryDir string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputPath:  DefaultOutputFile,
		SaveHistory: true,
		HistoryDir:  XDGDataDir(),
		File:        &File{},
	}
}

// Validate checks the configuration for errors.
// It returns a sentinel error describing the first problem found.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}
	if c.OutputPath == "" {
		return ErrEmptyOutputPath
	}
	if c.SaveHistory && c.HistoryDir == "" {
		return ErrEmptyHistoryDir
	}
	return nil
}

// XDGDataDir returns the XDG data directory for urlmap.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/urlmap
// On macOS: ~/Library/Application Support/urlmap
// On Windows: %LOCALAPPDATA%\urlmap
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
