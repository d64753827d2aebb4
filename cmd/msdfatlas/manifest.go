package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/fontatlas"
	"gopkg.in/yaml.v3"
)

// manifest describes one atlas build.
//
//	name: ui
//	font: fonts/ui.ttf
//	size: 48
//	range: 4
//	characterRanges:
//	  - ["a", "z"]
//	  - ["0", "9"]
//	characters: " .,!?"
type manifest struct {
	Name            string      `yaml:"name"`
	Font            string      `yaml:"font"`
	Size            int         `yaml:"size"`
	Range           float64     `yaml:"range"`
	Padding         *int        `yaml:"padding"`
	Kerning         *bool       `yaml:"kerning"`
	ErrorCorrection float64     `yaml:"errorCorrection"`
	CharacterRanges [][2]string `yaml:"characterRanges"`
	Characters      string      `yaml:"characters"`
}

// readManifest parses the manifest at path. A relative font path is
// resolved against the manifest's directory.
func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := parseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Font != "" && !filepath.IsAbs(m.Font) {
		m.Font = filepath.Join(filepath.Dir(path), m.Font)
	}
	return m, nil
}

func parseManifest(data []byte) (*manifest, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Size < 0 {
		return nil, fmt.Errorf("size %d is negative", m.Size)
	}
	if m.Range < 0 {
		return nil, fmt.Errorf("range %g is negative", m.Range)
	}
	if _, err := m.letters(); err != nil {
		return nil, err
	}
	return &m, nil
}

// letters expands the character ranges and appends the extra characters.
func (m *manifest) letters() (string, error) {
	var sb strings.Builder
	for _, r := range m.CharacterRanges {
		lo, err := single(r[0])
		if err != nil {
			return "", err
		}
		hi, err := single(r[1])
		if err != nil {
			return "", err
		}
		if hi < lo {
			return "", fmt.Errorf("character range %q..%q is reversed", r[0], r[1])
		}
		if hi >= fontatlas.MaxGlyph {
			return "", fmt.Errorf("character range %q..%q: %w", r[0], r[1], fontatlas.ErrRuneOutOfRange)
		}
		for c := lo; c <= hi; c++ {
			sb.WriteRune(c)
		}
	}
	sb.WriteString(m.Characters)
	return sb.String(), nil
}

func single(s string) (rune, error) {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || n != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("character range bound %q is not a single character", s)
	}
	return r, nil
}

// options returns the load options set by the manifest.
func (m *manifest) options() []fontatlas.Option {
	var opts []fontatlas.Option
	if m.Size > 0 {
		opts = append(opts, fontatlas.WithEmSize(m.Size))
	}
	if m.Range > 0 {
		opts = append(opts, fontatlas.WithPixelRange(m.Range))
	}
	if m.Padding != nil {
		opts = append(opts, fontatlas.WithPadding(*m.Padding))
	}
	if m.Kerning != nil {
		opts = append(opts, fontatlas.WithKerning(*m.Kerning))
	}
	if m.ErrorCorrection > 0 {
		opts = append(opts, fontatlas.WithErrorCorrection(m.ErrorCorrection))
	}
	return opts
}
