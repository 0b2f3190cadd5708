package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_TextMode(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := newLogger(buf, false)
	logger.Error("boom", "path", "doc.ld")
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected text log to contain message, got: %s", buf.String())
	}
}

func TestNewLogger_JSONMode(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := newLogger(buf, true)
	logger.Error("boom", "path", "doc.ld")
	if !strings.Contains(buf.String(), `"msg":"boom"`) {
		t.Errorf("expected JSON log line, got: %s", buf.String())
	}
}
