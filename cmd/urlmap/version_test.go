package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewVersionCmd tests the version command output.
func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	out := buf.String()
	if !strings.Contains(out, "urlmap version") {
		t.Errorf("expected version line, got:\n%s", out)
	}
	if !strings.Contains(out, "commit:") {
		t.Errorf("expected commit line, got:\n%s", out)
	}
	if !strings.Contains(out, "built:") {
		t.Errorf("expected build date line, got:\n%s", out)
	}
}

// TestGetVersion tests the version fallback chain.
func TestGetVersion(t *testing.T) {
	t.Parallel()

	if getVersion() == "" {
		t.Error("expected non-empty version")
	}
	if getCommit() == "" {
		t.Error("expected non-empty commit")
	}
	if getDate() == "" {
		t.Error("expected non-empty date")
	}
}
