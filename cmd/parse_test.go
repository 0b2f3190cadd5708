package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

// mockSourceReader is a test double for SourceReader.
type mockSourceReader struct {
	data []byte
	err  error
}

func (m *mockSourceReader) ReadSource(_ context.Context, _ string) ([]byte, error) {
	return m.data, m.err
}

func TestNewParseCmd_HasJSONAndStrictFlags(t *testing.T) {
	c := NewParseCmd(&mockSourceReader{})
	if c.Flags().Lookup("json") == nil {
		t.Error("expected --json flag on parse command")
	}
	if c.Flags().Lookup("strict") == nil {
		t.Error("expected --strict flag on parse command")
	}
}

func TestNewParseCmd_CleanDocumentSucceeds(t *testing.T) {
	reader := &mockSourceReader{data: []byte("# Title\n\nBody text.\n")}
	c := NewParseCmd(reader)
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(errOut)
	c.Flags().String("request-id", "", "")
	c.Flags().String("config", "/nonexistent/.ldoc.yml", "")
	c.SetArgs([]string{"--json", "doc.ld"})

	if err := c.Execute(); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected JSON output on stdout")
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no diagnostics on stderr, got: %s", errOut.String())
	}
}

func TestNewParseCmd_RecoveryModeReportsDiagnostics(t *testing.T) {
	reader := &mockSourceReader{data: []byte("::list\n- A\n")}
	c := NewParseCmd(reader)
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(errOut)
	c.Flags().String("request-id", "req-1", "")
	c.Flags().String("config", "/nonexistent/.ldoc.yml", "")
	c.SetArgs([]string{"doc.ld"})

	if err := c.Execute(); err == nil {
		t.Fatal("expected a non-nil error when diagnostics were recorded")
	}
	if errOut.Len() == 0 {
		t.Error("expected a diagnostic line on stderr")
	}
}

func TestNewParseCmd_StrictModeAbortsOnFirstDiagnostic(t *testing.T) {
	reader := &mockSourceReader{data: []byte("::list\n- A\n")}
	c := NewParseCmd(reader)
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(errOut)
	c.Flags().String("request-id", "req-1", "")
	c.Flags().String("config", "/nonexistent/.ldoc.yml", "")
	c.SetArgs([]string{"--strict", "doc.ld"})

	if err := c.Execute(); err == nil {
		t.Fatal("expected strict mode to fail on the unterminated fence")
	}
	if out.Len() != 0 {
		t.Error("strict mode failure should not emit JSON")
	}
}

func TestNewParseCmd_ReadErrorPropagates(t *testing.T) {
	reader := &mockSourceReader{err: errors.New("permission denied")}
	c := NewParseCmd(reader)
	c.SetOut(new(bytes.Buffer))
	c.SetErr(new(bytes.Buffer))
	c.Flags().String("request-id", "", "")
	c.Flags().String("config", "/nonexistent/.ldoc.yml", "")
	c.SetArgs([]string{"doc.ld"})

	if err := c.Execute(); err == nil {
		t.Fatal("expected the read error to propagate")
	}
}
