package fontatlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fontatlas package.
var (
	// ErrRuneOutOfRange is returned when a requested character code does not
	// fit the MaxGlyph slot table.
	ErrRuneOutOfRange = errors.New("fontatlas: character code outside glyph table")

	// ErrEmptyFontData is returned when the font file is empty.
	ErrEmptyFontData = errors.New("fontatlas: empty font data")

	// ErrNoLetters is returned when the character set is empty.
	ErrNoLetters = errors.New("fontatlas: no characters requested")

	// ErrAtlasTooLarge is returned when the glyphs do not fit the maximum
	// atlas size.
	ErrAtlasTooLarge = errors.New("fontatlas: glyphs do not fit the maximum atlas size")

	// ErrInvalidAtlas is returned by LoadAtlas for malformed metadata.
	ErrInvalidAtlas = errors.New("fontatlas: invalid atlas metadata")
)

// GlyphNotFoundError is returned in strict mode when the font has no glyph
// for a requested character.
type GlyphNotFoundError struct {
	Rune rune
}

func (e *GlyphNotFoundError) Error() string {
	return fmt.Sprintf("fontatlas: no glyph for %q (U+%04X)", e.Rune, e.Rune)
}

// ConfigError describes an invalid option value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "fontatlas: invalid option " + e.Field + ": " + e.Reason
}
