package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"", false, true},
		{"debug", true, true},
		{"INFO", false, true},
		{"error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(tt.level, "", &buf)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			log.Debug().Msg("dbg-line")
			log.Info().Msg("info-line")

			out := buf.String()
			if strings.Contains(out, "dbg-line") != tt.debugSeen {
				t.Errorf("debug visibility: want %v in %q", tt.debugSeen, out)
			}
			if strings.Contains(out, "info-line") != tt.infoSeen {
				t.Errorf("info visibility: want %v in %q", tt.infoSeen, out)
			}
		})
	}
}

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", FormatJSON, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Str("k", "v").Msg("hello")
	if !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("JSON output: %q", buf.String())
	}

	buf.Reset()
	log, err = New("info", FormatConsole, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Str("k", "v").Msg("hello")
	if !strings.Contains(buf.String(), "k=v") || strings.Contains(buf.String(), `"k"`) {
		t.Errorf("console output: %q", buf.String())
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New("loud", "", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
