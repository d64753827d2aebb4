package msdf

import "errors"

// ErrEmptyBitmap is returned when a bitmap has zero width or height.
var ErrEmptyBitmap = errors.New("msdf: bitmap dimensions must be positive")

// ConfigError describes an invalid generator setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "msdf: invalid config." + e.Field + ": " + e.Reason
}
