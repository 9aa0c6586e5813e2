// Package config loads the optional richtree configuration file.
//
//	log_level: info
//	strict: false
//	sanitizer:
//	  allow_tags: [iframe]
//	  add_attrs: [title]
//	  forbid_tags: [video]
//	highlight:
//	  enabled: true
//	  style: github
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gaurav-prasanna/richtree/core/sanitize"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the file configuration. Command-line flags override it.
type Config struct {
	LogLevel  string    `yaml:"log_level"`
	Strict    bool      `yaml:"strict"`
	Sanitizer Sanitizer `yaml:"sanitizer"`
	Highlight Highlight `yaml:"highlight"`
}

// Sanitizer extends the default sanitizer lists.
type Sanitizer struct {
	AllowTags  []string `yaml:"allow_tags"`
	AddAttrs   []string `yaml:"add_attrs"`
	ForbidTags []string `yaml:"forbid_tags"`
}

// Highlight controls syntax highlighting of code blocks in HTML output.
type Highlight struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel:  "info",
		Highlight: Highlight{Style: "github"},
	}
}

// Load reads the YAML file at path over the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c Config) Level() (logrus.Level, error) {
	if c.LogLevel == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log_level: %w", err)
	}
	return lvl, nil
}

// SanitizerConfig merges the file lists into the default sanitizer config.
// Tags that cannot be registered are returned so the caller can report them.
func (c Config) SanitizerConfig() (sanitize.Config, []string) {
	sc := sanitize.DefaultConfig()
	var rejected []string
	for _, tag := range c.Sanitizer.AllowTags {
		if !sc.RegisterTagAllow(tag) {
			rejected = append(rejected, tag)
		}
	}
	sc.AddAttrs = append(sc.AddAttrs, c.Sanitizer.AddAttrs...)
	sc.ForbidTags = append(sc.ForbidTags, c.Sanitizer.ForbidTags...)
	return sc, rejected
}
