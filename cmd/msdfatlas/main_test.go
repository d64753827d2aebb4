package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/fontatlas"
)

func TestParseManifest(t *testing.T) {
	data := []byte(`
name: ui
size: 48
range: 3
padding: 0
kerning: false
characterRanges:
  - ["a", "e"]
  - ["0", "2"]
characters: " !"
`)
	m, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	if m.Name != "ui" || m.Size != 48 || m.Range != 3 {
		t.Errorf("manifest = %+v", m)
	}
	if m.Padding == nil || *m.Padding != 0 || m.Kerning == nil || *m.Kerning {
		t.Errorf("padding/kerning not decoded: %+v", m)
	}
	letters, err := m.letters()
	if err != nil {
		t.Fatalf("letters: %v", err)
	}
	if letters != "abcde012 !" {
		t.Errorf("letters = %q", letters)
	}
	if n := len(m.options()); n != 4 {
		t.Errorf("options = %d, want 4", n)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "size: [", "yaml"},
		{"negative size", "size: -1", "negative"},
		{"reversed range", `characterRanges: [["z", "a"]]`, "reversed"},
		{"multi-rune bound", `characterRanges: [["ab", "z"]]`, "single character"},
		{"out of range", `characterRanges: [["a", "中"]]`, "outside glyph table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseManifest([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestReadManifestResolvesFont(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.yaml")
	if err := os.WriteFile(path, []byte("font: fonts/ui.ttf\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := readManifest(path)
	if err != nil {
		t.Fatalf("readManifest: %v", err)
	}
	if want := filepath.Join(dir, "fonts", "ui.ttf"); m.Font != want {
		t.Errorf("Font = %q, want %q", m.Font, want)
	}
}

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "atlas")
	var stdout bytes.Buffer
	j := job{
		letters: "Hi",
		out:     out,
		dump:    true,
		opts:    []fontatlas.Option{fontatlas.WithKerning(false), fontatlas.WithBackend(nil)},
	}
	if err := run(j, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, ext := range []string{".png", ".json"} {
		if fi, err := os.Stat(out + ext); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", ext, err)
		}
	}
	if !strings.Contains(stdout.String(), "2 glyphs") {
		t.Errorf("dump = %q", stdout.String())
	}

	f, err := fontatlas.LoadAtlas(out+".png", out+".json", fontatlas.WithBackend(nil))
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	defer f.Close()
	if f.GlyphCount() != 2 {
		t.Errorf("reloaded %d glyphs, want 2", f.GlyphCount())
	}
}

func TestRunMissingFont(t *testing.T) {
	j := job{font: filepath.Join(t.TempDir(), "missing.ttf"), letters: "a", out: filepath.Join(t.TempDir(), "x")}
	err := run(j, &bytes.Buffer{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestWithManifest(t *testing.T) {
	j := job{letters: "xyz"}.withManifest(&manifest{Name: "ui", Characters: "ab"})
	if j.out != "ui" || j.letters != "ab" {
		t.Errorf("job = %+v", j)
	}
	j = job{letters: "xyz", out: "custom"}.withManifest(&manifest{Name: "ui"})
	if j.out != "custom" || j.letters != "xyz" {
		t.Errorf("job = %+v", j)
	}
}
