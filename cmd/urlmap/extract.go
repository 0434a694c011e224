package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/urlmap/internal/config"
	"github.com/nao1215/urlmap/internal/database"
	"github.com/nao1215/urlmap/internal/extractor"
	"github.com/nao1215/urlmap/internal/model"
	"github.com/nao1215/urlmap/internal/report"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [path...]",
		Short: "Extract URLs from files and directories into a Markdown report",
		Long: `Extract walks the given paths and collects every URL it finds.

Files are dispatched by extension: .json files are parsed as JSON
bookmark exports, .html and .htm files as HTML bookmark exports, and
everything else is scanned as plain text. Directories are walked
recursively, visiting .txt, .md, .markdown, .json, .html, and .htm files.

Unreadable or malformed files are logged and skipped; a single bad input
never aborts the run, and the command reports success even when every
input was invalid. When at least one URL is found, the report is written
to the output path, grouped by domain. When nothing is found, no file is
written.

Examples:
  # Extract from a notes directory into the default extracted_urls.md
  urlmap extract notes/

  # Mix files and directories, custom output path
  urlmap extract bookmarks.html chrome-bookmarks.json notes/ -o links.md

  # JSON output instead of Markdown
  urlmap extract notes/ --json -o links.json

  # Skip the history database
  urlmap extract notes/ --no-history

Configuration file (.urlmap) example:
  output: links.md
  textExtensions:
    - .log
  urlKeys:
    - uri`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExtractCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultOutputFile,
		"Output report path (always overwritten)")
	cmd.Flags().BoolP("json", "j", false,
		"Write the report as JSON instead of Markdown")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .urlmap in current or home directory)")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	return runExtract(cmd.Context(), cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Flags win over file values.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Inputs = args

	var err error

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the configuration file. An explicitly specified file must
	// exist; an implicit search that finds nothing is fine.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// The file's output path applies only when -o was left at its default.
	if !cmd.Flags().Changed("output") && cfg.File.Output != "" {
		cfg.OutputPath = cfg.File.Output
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// runExtract executes the extraction run. It always returns nil for
// input-level problems (missing paths, unreadable files, empty results):
// those are reported as warnings and the process still exits 0.
func runExtract(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Debug("starting extraction",
		"inputs", cfg.Inputs,
		"output", cfg.OutputPath,
		"json", cfg.JSONReport,
		"saveHistory", cfg.SaveHistory,
	)

	opts := []extractor.Option{extractor.WithLogger(logger)}
	if len(cfg.File.URLKeys) > 0 {
		opts = append(opts, extractor.WithURLKeys(cfg.File.URLKeys...))
	}
	if len(cfg.File.TextExtensions) > 0 {
		opts = append(opts, extractor.WithWalkExtensions(cfg.File.TextExtensions...))
	}

	collector := extractor.NewCollector(opts...)
	for _, input := range cfg.Inputs {
		collector.ProcessPath(input)
	}

	if collector.Len() == 0 {
		fmt.Println("No URLs found to save.")
		return nil
	}

	result := model.NewReport(collector.URLs())

	if err := writeReport(cfg, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("\nSuccessfully saved %d unique URLs to %s\n", result.Total, cfg.OutputPath)

	saveRunHistory(ctx, cfg, result, logger)

	return nil
}

// writeReport renders the report to the configured output path,
// overwriting any previous file.
func writeReport(cfg *config.Config, result *model.Report) error {
	// Create directories if they don't exist
	dir := filepath.Dir(cfg.OutputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	var w report.Writer
	if cfg.JSONReport {
		w = report.NewJSONWriter(f, report.WithPrettyPrint())
	} else {
		w = report.NewMarkdownWriter(f)
	}

	_, err = w.Write(result)
	return err
}

// saveRunHistory records the run in the history database.
// History failures are logged and never fail the run.
func saveRunHistory(ctx context.Context, cfg *config.Config, result *model.Report, logger *slog.Logger) {
	if !cfg.SaveHistory {
		return
	}

	db, err := database.Open(cfg.HistoryDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.HistoryDir, "error", err)
		return
	}
	defer db.Close()

	runID, err := db.SaveRun(ctx, cfg.Inputs, cfg.OutputPath, result)
	if err != nil {
		logger.Warn("failed to save run history", "error", err)
		return
	}
	logger.Debug("run recorded", "runID", runID, "db", db.Path())
}
