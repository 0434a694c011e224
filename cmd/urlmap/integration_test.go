package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/urlmap/internal/config"
	"github.com/nao1215/urlmap/internal/database"
	"github.com/nao1215/urlmap/internal/model"
)

// testConfig returns a Config pointing at temp-dir outputs with history
// redirected away from the real data directory.
func testConfig(t *testing.T, inputs ...string) *config.Config {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Inputs = inputs
	cfg.OutputPath = filepath.Join(t.TempDir(), "report.md")
	cfg.HistoryDir = t.TempDir()
	return cfg
}

// quietLogger returns a logger that discards output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestExtractEndToEnd runs full extractions through runExtract.
func TestExtractEndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("mixed corpus produces grouped markdown", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "notes.txt"),
			[]byte("Visit https://a.com/x and http://a.com/x and www.b.com/y"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "bookmarks.json"),
			[]byte(`{"link": "https://c.com", "nested": {"href": "http://d.com/p"}}`), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "export.html"),
			[]byte(`<DL><DT><A HREF="https://e.com/page">E</A><DT><A HREF="mailto:x@y.z">M</A></DL>`), 0600); err != nil {
			t.Fatal(err)
		}

		cfg := testConfig(t, dir)
		cfg.SaveHistory = false
		if err := runExtract(context.Background(), cfg, quietLogger()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(cfg.OutputPath)
		if err != nil {
			t.Fatalf("report not written: %v", err)
		}
		out := string(data)

		if !strings.Contains(out, "# Extracted URLs") {
			t.Error("missing report title")
		}
		if !strings.Contains(out, "*Total unique URLs: 6*") {
			t.Errorf("expected 6 unique URLs in:\n%s", out)
		}
		// Schemeless www match has no parsable host, so it groups first
		// under the empty domain.
		if !strings.Contains(out, "- [www.b.com/y](www.b.com/y)") {
			t.Error("missing schemeless URL item")
		}
		for _, want := range []string{"## a.com", "## c.com", "## d.com", "## e.com"} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in:\n%s", want, out)
			}
		}
		if strings.Contains(out, "mailto:") {
			t.Error("mailto link must not be collected")
		}
	})

	t.Run("empty result writes no file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "empty.txt"), []byte("no links here"), 0600); err != nil {
			t.Fatal(err)
		}

		cfg := testConfig(t, dir)
		cfg.SaveHistory = false
		if err := runExtract(context.Background(), cfg, quietLogger()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
			t.Error("expected no report file for empty result")
		}
	})

	t.Run("invalid inputs do not fail the run", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t, "/nonexistent/path/one", "/nonexistent/path/two")
		cfg.SaveHistory = false
		if err := runExtract(context.Background(), cfg, quietLogger()); err != nil {
			t.Errorf("invalid inputs must not fail the run, got: %v", err)
		}
	})

	t.Run("json mode writes a JSON report", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "notes.txt"),
			[]byte("https://a.com/x"), 0600); err != nil {
			t.Fatal(err)
		}

		cfg := testConfig(t, dir)
		cfg.SaveHistory = false
		cfg.JSONReport = true
		cfg.OutputPath = filepath.Join(t.TempDir(), "report.json")
		if err := runExtract(context.Background(), cfg, quietLogger()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(cfg.OutputPath)
		if err != nil {
			t.Fatalf("report not written: %v", err)
		}
		var decoded model.Report
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if decoded.Total != 1 {
			t.Errorf("got total %d, expected 1", decoded.Total)
		}
	})

	t.Run("run is recorded in history", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "notes.txt"),
			[]byte("https://a.com/x and https://b.com/y"), 0600); err != nil {
			t.Fatal(err)
		}

		cfg := testConfig(t, dir)
		if err := runExtract(context.Background(), cfg, quietLogger()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		db, err := database.Open(cfg.HistoryDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("history database not created: %v", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background(), 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("got %d runs, expected 1", len(runs))
		}
		if runs[0].Total != 2 {
			t.Errorf("got total %d, expected 2", runs[0].Total)
		}

		urls, err := db.GetRunURLs(context.Background(), runs[0].ID)
		if err != nil {
			t.Fatalf("failed to get run URLs: %v", err)
		}
		if len(urls) != 2 {
			t.Errorf("got %d URLs, expected 2", len(urls))
		}
	})

	t.Run("existing report is overwritten", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "notes.txt"),
			[]byte("https://fresh.example.com"), 0600); err != nil {
			t.Fatal(err)
		}

		cfg := testConfig(t, dir)
		cfg.SaveHistory = false
		if err := os.WriteFile(cfg.OutputPath, []byte("stale content"), 0600); err != nil {
			t.Fatal(err)
		}

		if err := runExtract(context.Background(), cfg, quietLogger()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(cfg.OutputPath)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), "stale content") {
			t.Error("expected report to be overwritten")
		}
	})
}

// TestExtractCommandExecute runs the command through cobra.
func TestExtractCommandExecute(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte("see https://example.com/page"), 0600); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "report.md")

	root := NewRootCmd()
	root.SetArgs([]string{"extract", dir, "-o", out, "--no-history"})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "## example.com") {
		t.Errorf("missing domain heading in:\n%s", string(data))
	}
}
