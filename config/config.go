// Package config loads the optional TOML run configuration. Every value
// has a production default, so a missing file is not an error; CLI flags
// override whatever the file provides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/Avionetito/PoliciApp/exam"
	"github.com/Avionetito/PoliciApp/pipeline"
)

// File mirrors the TOML schema of policiapp.toml.
type File struct {
	SourceDir   string   `toml:"source_dir"`
	CacheDir    string   `toml:"cache_dir"`
	OutputDir   string   `toml:"output_dir"`
	DPI         int      `toml:"dpi"`
	Languages   []string `toml:"languages"`
	PageSegMode *int     `toml:"psm"`
	EngineMode  *int     `toml:"oem"`
	Mode        string   `toml:"mode"`
}

// Load reads path and merges it over the pipeline defaults. A missing file
// yields the defaults unchanged.
func Load(path string) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return merge(cfg, file)
}

func merge(cfg pipeline.Config, file File) (pipeline.Config, error) {
	if file.SourceDir != "" {
		cfg.SourceDir = file.SourceDir
	}
	if file.CacheDir != "" {
		cfg.CacheDir = file.CacheDir
	}
	if file.OutputDir != "" {
		cfg.OutputDir = file.OutputDir
	}
	if file.DPI > 0 {
		cfg.DPI = file.DPI
	}
	if len(file.Languages) > 0 {
		cfg.Languages = file.Languages
	}
	if file.PageSegMode != nil {
		cfg.PageSegMode = *file.PageSegMode
	}
	if file.EngineMode != nil {
		cfg.EngineMode = *file.EngineMode
	}
	if file.Mode != "" {
		mode, err := exam.ParseModeFromString(file.Mode)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		cfg.Mode = mode
	}
	return cfg, nil
}
