package fontatlas

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MaxGlyph is the size of the character-to-slot table. Character codes at
// or above it cannot be loaded.
const MaxGlyph = 512

// ASCII is the printable ASCII range including space.
const ASCII = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// parseCharset normalizes letters to NFC and returns the distinct runes in
// order of first occurrence. Composed forms such as "e" + U+0301 become the
// single code point U+00E9 and take one slot.
func parseCharset(letters string) ([]rune, error) {
	s := norm.NFC.String(letters)
	var seen [MaxGlyph]bool
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 0 || r >= MaxGlyph {
			return nil, fmt.Errorf("%w: %q (U+%04X)", ErrRuneOutOfRange, r, r)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, ErrNoLetters
	}
	return out, nil
}
