package cmd

import (
	"bytes"
	"testing"
)

func TestNewDiagnosticsCmd_CleanDocumentSucceeds(t *testing.T) {
	reader := &mockSourceReader{data: []byte("# Title\n\nBody text.\n")}
	c := NewDiagnosticsCmd(reader)
	errOut := new(bytes.Buffer)
	c.SetErr(errOut)
	c.Flags().String("request-id", "", "")
	c.Flags().String("config", "/nonexistent/.ldoc.yml", "")
	c.SetArgs([]string{"doc.ld"})

	if err := c.Execute(); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no diagnostics, got: %s", errOut.String())
	}
}

func TestNewDiagnosticsCmd_ReportsEveryDiagnostic(t *testing.T) {
	reader := &mockSourceReader{data: []byte("::list\n- A\n\n::table\n|a|\n")}
	c := NewDiagnosticsCmd(reader)
	errOut := new(bytes.Buffer)
	c.SetErr(errOut)
	c.Flags().String("request-id", "req-2", "")
	c.Flags().String("config", "/nonexistent/.ldoc.yml", "")
	c.SetArgs([]string{"doc.ld"})

	if err := c.Execute(); err == nil {
		t.Fatal("expected a non-nil error when diagnostics were recorded")
	}
	if errOut.Len() == 0 {
		t.Error("expected diagnostic lines on stderr")
	}
}
