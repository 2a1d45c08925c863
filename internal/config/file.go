package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with pointer fields so that absent YAML keys
// can be told apart from zero values.
type fileConfig struct {
	Output      *string   `yaml:"output"`
	Manifest    *string   `yaml:"manifest"`
	Duration    *float64  `yaml:"duration"`
	FPS         *int      `yaml:"fps"`
	Zoom        *float64  `yaml:"zoom"`
	Border      *int      `yaml:"border"`
	BorderColor *string   `yaml:"border_color"`
	Width       *int      `yaml:"width"`
	Height      *int      `yaml:"height"`
	Crossfade   *float64  `yaml:"crossfade"`
	Transition  *string   `yaml:"transition"`
	Audio       *string   `yaml:"audio"`
	Workers     *int      `yaml:"workers"`
	Quality     *int      `yaml:"quality"`
	DPI         *int      `yaml:"dpi"`
	QRURL       *string   `yaml:"qr_url"`
	LogLevel    *string   `yaml:"log_level"`
	Durations   []float64 `yaml:"durations"`
}

// MergeFile overlays values from a YAML config file onto cfg. A file value
// is skipped when the matching command-line flag was set explicitly, so
// flags always win over the file. The changed callback reports whether the
// flag with the given name was set.
func MergeFile(cfg *Config, path string, changed func(name string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString := func(flag string, dst *string, src *string) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}
	setFloat := func(flag string, dst *float64, src *float64) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}
	setInt := func(flag string, dst *int, src *int) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}

	setString("output", &cfg.OutputPath, fc.Output)
	setString("manifest", &cfg.ManifestPath, fc.Manifest)
	setFloat("duration", &cfg.Duration, fc.Duration)
	setInt("fps", &cfg.FPS, fc.FPS)
	setFloat("zoom", &cfg.ZoomFactor, fc.Zoom)
	setInt("border", &cfg.BorderSize, fc.Border)
	setString("border-color", &cfg.BorderColor, fc.BorderColor)
	setInt("width", &cfg.Width, fc.Width)
	setInt("height", &cfg.Height, fc.Height)
	setFloat("crossfade", &cfg.Crossfade, fc.Crossfade)
	setString("transition", &cfg.Transition, fc.Transition)
	setString("audio", &cfg.AudioPath, fc.Audio)
	setInt("workers", &cfg.Workers, fc.Workers)
	setInt("quality", &cfg.Quality, fc.Quality)
	setInt("dpi", &cfg.DPI, fc.DPI)
	setString("qr-url", &cfg.QRURL, fc.QRURL)
	setString("log-level", &cfg.LogLevel, fc.LogLevel)

	if len(fc.Durations) > 0 {
		cfg.Durations = fc.Durations
	}
	return nil
}
