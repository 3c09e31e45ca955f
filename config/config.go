// Package config loads the flat TOML application/render settings that
// drive the cmd/pttrace host harness: output resolution, sample
// counts, and which of the two color kernels to dispatch.
//
// Grounded on noisetorch's config.go (a reference example, not the
// teacher) — DecodeFile into a
// flat struct, an Initialize step that writes sane defaults if the
// file is missing — generalized from log.Fatalf-on-error to explicit
// %w-wrapped returns, since a library package must not call os.Exit
// on behalf of its caller.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrNotFound is returned by Load when the config file does not
// exist; callers typically respond by calling Default and Save.
var ErrNotFound = errors.New("config: file not found")

// Config is the render harness's flat settings file.
type Config struct {
	Width                int     `toml:"width"`
	Height               int     `toml:"height"`
	PixelSideSubdivision int     `toml:"pixel_side_subdivision"`
	Deterministic        bool    `toml:"deterministic"`
	FieldOfViewDegrees   float32 `toml:"field_of_view_degrees"`
	MaxFrames            int     `toml:"max_frames"`
	ScenePath            string  `toml:"scene_path"`
	OutputPath           string  `toml:"output_path"`
}

// Default returns the settings a fresh install starts from.
func Default() Config {
	return Config{
		Width:                800,
		Height:               600,
		PixelSideSubdivision: 1,
		Deterministic:        false,
		FieldOfViewDegrees:   60,
		MaxFrames:            256,
		ScenePath:            "scene.yaml",
		OutputPath:           "render.png",
	}
}

// Load reads and decodes the TOML config file at path.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating or truncating the file.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}
