package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewWatchCmd_ReturnsWhenContextCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.ld")
	if err := os.WriteFile(path, []byte("# Title\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	c := NewWatchCmd(fileSourceReader{})
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(new(bytes.Buffer))
	c.Flags().String("request-id", "req-w", "")
	c.Flags().String("config", "/nonexistent/.ldoc.yml", "")
	c.SetArgs([]string{path})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := c.ExecuteContext(ctx); err != nil {
		t.Fatalf("expected clean shutdown on context cancellation, got: %v", err)
	}
	if !strings.Contains(out.String(), "ok") {
		t.Errorf("expected an initial clean report, got: %s", out.String())
	}
}

func TestReportParse_PrintsDiagnosticsForBrokenDocument(t *testing.T) {
	reader := &mockSourceReader{data: []byte("::list\n- A\n")}
	c := NewWatchCmd(reader)
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(errOut)

	reportParse(c, reader, "doc.ld", &ldocConfig{}, "req-w")

	if out.Len() != 0 {
		t.Errorf("expected no clean report, got: %s", out.String())
	}
	if !strings.Contains(errOut.String(), "UnterminatedFence") {
		t.Errorf("expected an UnterminatedFence diagnostic line, got: %s", errOut.String())
	}
}

func TestReportParse_CleanDocumentPrintsOK(t *testing.T) {
	reader := &mockSourceReader{data: []byte("# Title\n")}
	c := NewWatchCmd(reader)
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(new(bytes.Buffer))

	reportParse(c, reader, "doc.ld", &ldocConfig{}, "req-w")

	if !strings.Contains(out.String(), "ok") {
		t.Errorf("expected a clean report, got: %s", out.String())
	}
}
