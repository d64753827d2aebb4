package fontatlas

import (
	"math"
	"runtime"
)

// Option configures Load, LoadBytes, LoadFS, LoadAtlas and Library.Get.
type Option func(*config)

// config holds the settings for one atlas build.
type config struct {
	emSize          int
	pixelRange      float64
	angleThreshold  float64
	padding         int
	maxAtlasSize    int
	kerning         bool
	errorCorrection float64
	workers         int
	strict          bool

	backend    Backend
	hasBackend bool
}

// defaultConfig returns the default build settings.
func defaultConfig() config {
	return config{
		emSize:         32,
		pixelRange:     4,
		angleThreshold: math.Pi / 3,
		padding:        2,
		maxAtlasSize:   4096,
		kerning:        true,
		workers:        runtime.GOMAXPROCS(0),
	}
}

func newConfig(opts []Option) (config, error) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.validate(); err != nil {
		return config{}, err
	}
	return c, nil
}

func (c *config) validate() error {
	switch {
	case c.emSize < 4 || c.emSize > 1024:
		return &ConfigError{Field: "EmSize", Reason: "must be in [4, 1024]"}
	case !(c.pixelRange > 0) || c.pixelRange > 64:
		return &ConfigError{Field: "PixelRange", Reason: "must be in (0, 64]"}
	case !(c.angleThreshold > 0) || c.angleThreshold > math.Pi:
		return &ConfigError{Field: "AngleThreshold", Reason: "must be in (0, pi]"}
	case c.padding < 0:
		return &ConfigError{Field: "Padding", Reason: "must not be negative"}
	case c.maxAtlasSize < 1 || c.maxAtlasSize > 16384:
		return &ConfigError{Field: "MaxAtlasSize", Reason: "must be in [1, 16384]"}
	case c.errorCorrection < 0 || math.IsNaN(c.errorCorrection):
		return &ConfigError{Field: "ErrorCorrection", Reason: "must not be negative"}
	}
	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return nil
}

// WithEmSize sets the glyph rasterization size in pixels per em.
// Default: 32.
func WithEmSize(px int) Option {
	return func(c *config) {
		c.emSize = px
	}
}

// WithPixelRange sets the distance in atlas pixels covered by the field on
// each side of an edge. Larger values allow bigger outlines and glows at
// the cost of atlas space. Default: 4.
func WithPixelRange(px float64) Option {
	return func(c *config) {
		c.pixelRange = px
	}
}

// WithAngleThreshold sets the corner detection angle in radians.
// Default: pi/3.
func WithAngleThreshold(rad float64) Option {
	return func(c *config) {
		c.angleThreshold = rad
	}
}

// WithPadding sets the empty pixels between packed glyphs. Default: 2.
func WithPadding(px int) Option {
	return func(c *config) {
		c.padding = px
	}
}

// WithMaxAtlasSize caps the atlas side length in pixels. Default: 4096.
func WithMaxAtlasSize(px int) Option {
	return func(c *config) {
		c.maxAtlasSize = px
	}
}

// WithKerning enables or disables the kerning table. Default: enabled.
func WithKerning(enabled bool) Option {
	return func(c *config) {
		c.kerning = enabled
	}
}

// WithErrorCorrection enables clash correction with the given threshold in
// pixels; 1.001 is a good value. Default: 0 (off).
func WithErrorCorrection(threshold float64) Option {
	return func(c *config) {
		c.errorCorrection = threshold
	}
}

// WithWorkers sets the number of goroutines generating glyphs.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithBackend uploads the atlas through b instead of the backend installed
// by Init. A nil b keeps the atlas on the CPU.
func WithBackend(b Backend) Option {
	return func(c *config) {
		c.backend = b
		c.hasBackend = true
	}
}

// WithStrict makes missing glyphs an error instead of a warning.
func WithStrict() Option {
	return func(c *config) {
		c.strict = true
	}
}

// resolveBackend returns the explicit backend or the package default.
func (c *config) resolveBackend() Backend {
	if c.hasBackend {
		return c.backend
	}
	return defaultBackend()
}

// configKey is the comparable subset of config that determines atlas
// contents.
type configKey struct {
	emSize          int
	pixelRange      float64
	angleThreshold  float64
	padding         int
	maxAtlasSize    int
	kerning         bool
	errorCorrection float64
	strict          bool
}

func (c *config) key() configKey {
	return configKey{
		emSize:          c.emSize,
		pixelRange:      c.pixelRange,
		angleThreshold:  c.angleThreshold,
		padding:         c.padding,
		maxAtlasSize:    c.maxAtlasSize,
		kerning:         c.kerning,
		errorCorrection: c.errorCorrection,
		strict:          c.strict,
	}
}
