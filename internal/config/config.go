package config

// Config carries every knob for one slideshow run. Flag parsing fills it in
// cmd/slideshow; an optional YAML file supplies values for flags the user
// did not set explicitly.
type Config struct {
	InputPath    string // images directory or a PDF file
	ManifestPath string // optional ordering manifest, one filename per line
	OutputPath   string
	Duration     float64 // seconds each image is shown
	FPS          int
	ZoomFactor   float64 // 1.0 = no zoom
	BorderSize   int
	BorderColor  string
	Width        int
	Height       int
	Crossfade    float64 // seconds of overlap between adjacent clips
	Transition   string  // xfade style name
	AudioPath    string
	Workers      int // 0 = auto
	Quality      int // 0 = auto per encoder
	Encoder      string
	DPI          int // PDF page rasterization
	QRURL        string
	LogLevel     string

	// Durations overrides Duration per image index (config file only).
	// Indexes past the end of the slice fall back to Duration.
	Durations []float64
}

// Default returns the baseline configuration before flags or file values.
func Default() Config {
	return Config{
		OutputPath:  "slideshow.mp4",
		Duration:    3.0,
		FPS:         25,
		ZoomFactor:  1.1,
		BorderSize:  0,
		BorderColor: "black",
		Width:       1920,
		Height:      1080,
		Crossfade:   1.0,
		Transition:  "fade",
		DPI:         300,
		LogLevel:    "info",
	}
}

// SegmentDuration returns the display duration for image index i.
func (c *Config) SegmentDuration(i int) float64 {
	if i >= 0 && i < len(c.Durations) && c.Durations[i] > 0 {
		return c.Durations[i]
	}
	return c.Duration
}
