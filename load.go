package fontatlas

import (
	"fmt"
	"io/fs"
	"os"
)

// Load reads the font file at path and builds an atlas for the characters
// in letters. Duplicate characters are loaded once; slot order follows
// their first occurrence after NFC normalization.
//
// The atlas is uploaded through the backend given by WithBackend or, if
// none, the one installed by Init. Call Close when the font is no longer
// needed.
func Load(path, letters string, opts ...Option) (*Font, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: read font: %w", err)
	}
	f, err := build(data, letters, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w (font %s)", err, path)
	}
	return f, nil
}

// LoadBytes builds an atlas from font data in memory.
func LoadBytes(data []byte, letters string, opts ...Option) (*Font, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return build(data, letters, &cfg)
}

// LoadFS builds an atlas from the font file name in fsys.
func LoadFS(fsys fs.FS, name, letters string, opts ...Option) (*Font, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: read font: %w", err)
	}
	f, err := build(data, letters, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w (font %s)", err, name)
	}
	return f, nil
}
