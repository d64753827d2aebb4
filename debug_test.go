package fontatlas

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDebug(t *testing.T) {
	f := mustLoad(t, "Ab ", WithKerning(false))
	var buf bytes.Buffer
	if err := f.Debug(&buf); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Header, font metrics, column titles, one row per slot.
	if len(lines) != 3+f.GlyphCount() {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 3+f.GlyphCount(), out)
	}
	if !strings.HasPrefix(lines[0], `font "Go": 3 glyphs`) {
		t.Errorf("header = %q", lines[0])
	}
	tests := []struct {
		line int
		want string
	}{
		{3, "U+0041"},
		{4, "U+0062"},
		{5, "' '"},
	}
	for _, tt := range tests {
		if !strings.Contains(lines[tt.line], tt.want) {
			t.Errorf("line %d = %q, want %q", tt.line, lines[tt.line], tt.want)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDebugWriteError(t *testing.T) {
	f := mustLoad(t, "a", WithKerning(false))
	if err := f.Debug(failWriter{}); err == nil {
		t.Error("Debug ignored the write error")
	}
}
