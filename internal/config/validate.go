package config

import "fmt"

// ValidationError reports an invalid parameter combination. It is detected
// before any rendering work starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Field, e.Reason)
}

// Validate checks the configuration for combinations that would produce a
// broken filter graph or an unplayable output.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return &ValidationError{Field: "input", Reason: "is required"}
	}
	if c.OutputPath == "" {
		return &ValidationError{Field: "output", Reason: "is required"}
	}
	if c.Duration <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if c.FPS <= 0 {
		return &ValidationError{Field: "fps", Reason: "must be positive"}
	}
	if c.ZoomFactor <= 0 {
		return &ValidationError{Field: "zoom", Reason: "must be positive"}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return &ValidationError{Field: "width/height", Reason: "must be positive"}
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		// yuv420p needs even dimensions.
		return &ValidationError{Field: "width/height", Reason: "must be even"}
	}
	if c.BorderSize < 0 {
		return &ValidationError{Field: "border", Reason: "must not be negative"}
	}
	if 2*c.BorderSize >= c.Width || 2*c.BorderSize >= c.Height {
		return &ValidationError{Field: "border", Reason: "leaves no visible area inside the canvas"}
	}
	if c.Crossfade < 0 {
		return &ValidationError{Field: "crossfade", Reason: "must not be negative"}
	}
	if c.Crossfade >= c.Duration {
		return &ValidationError{Field: "crossfade", Reason: fmt.Sprintf("(%.2fs) must be shorter than the per-image duration (%.2fs)", c.Crossfade, c.Duration)}
	}
	for i, d := range c.Durations {
		if d <= 0 {
			return &ValidationError{Field: "durations", Reason: fmt.Sprintf("entry %d must be positive", i)}
		}
		if c.Crossfade >= d {
			return &ValidationError{Field: "crossfade", Reason: fmt.Sprintf("(%.2fs) must be shorter than the duration of image %d (%.2fs)", c.Crossfade, i, d)}
		}
	}
	if c.Transition == "" {
		return &ValidationError{Field: "transition", Reason: "is required"}
	}
	if c.DPI <= 0 {
		return &ValidationError{Field: "dpi", Reason: "must be positive"}
	}
	return nil
}
