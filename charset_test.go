package fontatlas

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCharset(t *testing.T) {
	tests := []struct {
		name    string
		letters string
		want    string
		err     error
	}{
		{"order of first occurrence", "banana", "ban", nil},
		{"composes to NFC", "e\u0301", "\u00e9", nil},
		{"keeps latin-1 extended", "Āā", "Āā", nil},
		{"last valid code", "ǿ", "ǿ", nil},
		{"first invalid code", "Ȁ", "", ErrRuneOutOfRange},
		{"cjk", "a中", "", ErrRuneOutOfRange},
		{"empty", "", "", ErrNoLetters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCharset(tt.letters)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("err = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCharset: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("runes = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestASCIICharset(t *testing.T) {
	runes, err := parseCharset(ASCII)
	if err != nil {
		t.Fatalf("parseCharset(ASCII): %v", err)
	}
	if len(runes) != 95 {
		t.Errorf("ASCII has %d characters, want 95", len(runes))
	}
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }
