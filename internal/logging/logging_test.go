package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriterLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"info", false, false},
		{"verbose", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, tt.verbose, true)
			logger.Debug("stage started", "pipeline", "qa")
			logger.Info("done", "records", 3)

			out := buf.String()
			if got := strings.Contains(out, "stage started"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v\n%s", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "records=3") {
				t.Errorf("info line missing attribute: %s", out)
			}
		})
	}
}

func TestNoColorOutputHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, false, false).Warn("generation failed", "stage", "answer")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no ANSI escapes for a non-terminal writer: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("ignored")
}
