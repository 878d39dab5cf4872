// Package config loads lint settings from .hastitle.toml or .hastitle.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/hastitle"
	"github.com/fwojciec/hastitle/marker"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Filenames are searched in order in each directory by Find.
var Filenames = []string{
	".hastitle.toml",
	".hastitle.yaml",
	".hastitle.yml",
}

// Config holds lint settings.
type Config struct {
	Extensions  []string `toml:"extensions" yaml:"extensions"`
	Exclude     []string `toml:"exclude" yaml:"exclude"`
	Concurrency int      `toml:"concurrency" yaml:"concurrency"`
	Markers     Markers  `toml:"markers" yaml:"markers"`
}

// Markers overrides the literal delimiters used for extraction.
type Markers struct {
	TemplateOpen  string `toml:"template_open" yaml:"template_open"`
	TemplateClose string `toml:"template_close" yaml:"template_close"`
	HeadOpen      string `toml:"head_open" yaml:"head_open"`
	HeadClose     string `toml:"head_close" yaml:"head_close"`
	TitleOpen     string `toml:"title_open" yaml:"title_open"`
	TitleClose    string `toml:"title_close" yaml:"title_close"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	m := marker.DefaultMarkers()
	return Config{
		Markers: Markers{
			TemplateOpen:  m.TemplateOpen,
			TemplateClose: m.TemplateClose,
			HeadOpen:      m.HeadOpen,
			HeadClose:     m.HeadClose,
			TitleOpen:     m.TitleOpen,
			TitleClose:    m.TitleClose,
		},
	}
}

// MarkerSet converts the configured markers for marker.NewDetectorWith.
func (c Config) MarkerSet() marker.Markers {
	return marker.Markers{
		TemplateOpen:  c.Markers.TemplateOpen,
		TemplateClose: c.Markers.TemplateClose,
		HeadOpen:      c.Markers.HeadOpen,
		HeadClose:     c.Markers.HeadClose,
		TitleOpen:     c.Markers.TitleOpen,
		TitleClose:    c.Markers.TitleClose,
	}
}

// Validate returns EINVALID for empty markers or a negative concurrency.
func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return hastitle.Errorf(hastitle.EINVALID, "concurrency must not be negative")
	}
	fields := []struct {
		name  string
		value string
	}{
		{"template_open", c.Markers.TemplateOpen},
		{"template_close", c.Markers.TemplateClose},
		{"head_open", c.Markers.HeadOpen},
		{"head_close", c.Markers.HeadClose},
		{"title_open", c.Markers.TitleOpen},
		{"title_close", c.Markers.TitleClose},
	}
	for _, f := range fields {
		if f.value == "" {
			return hastitle.Errorf(hastitle.EINVALID, "marker %s must not be empty", f.name)
		}
	}
	return nil
}

// Load reads the file at path over Default. An empty path returns Default.
// The format is chosen by extension; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return cfg, hastitle.Errorf(hastitle.ENOTFOUND, "config %q not found", path)
	} else if err != nil {
		return cfg, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, hastitle.Errorf(hastitle.EINVALID, "parse %s: %v", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, hastitle.Errorf(hastitle.EINVALID, "parse %s: %v", path, err)
		}
	default:
		return cfg, hastitle.Errorf(hastitle.EINVALID, "unsupported config extension: %s", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find returns explicit if set, otherwise the first config file found in
// dir or its parents. It returns an empty path when none exists.
func Find(dir, explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		info, err := os.Stat(explicit)
		if errors.Is(err, iofs.ErrNotExist) {
			return "", hastitle.Errorf(hastitle.ENOTFOUND, "config %q not found", explicit)
		} else if err != nil {
			return "", err
		}
		if info.IsDir() {
			return "", hastitle.Errorf(hastitle.EINVALID, "config %q is a directory", explicit)
		}
		return explicit, nil
	}

	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range Filenames {
			candidate := filepath.Join(abs, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// Merge applies non-zero fields of override on top of base. Exclude
// patterns accumulate; everything else replaces.
func Merge(base, override Config) Config {
	out := base
	if len(override.Extensions) > 0 {
		out.Extensions = override.Extensions
	}
	if len(override.Exclude) > 0 {
		out.Exclude = append(append([]string(nil), base.Exclude...), override.Exclude...)
	}
	if override.Concurrency > 0 {
		out.Concurrency = override.Concurrency
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&out.Markers.TemplateOpen, override.Markers.TemplateOpen)
	set(&out.Markers.TemplateClose, override.Markers.TemplateClose)
	set(&out.Markers.HeadOpen, override.Markers.HeadOpen)
	set(&out.Markers.HeadClose, override.Markers.HeadClose)
	set(&out.Markers.TitleOpen, override.Markers.TitleOpen)
	set(&out.Markers.TitleClose, override.Markers.TitleClose)

	return out
}
