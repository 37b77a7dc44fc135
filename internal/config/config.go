package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/dubfilter/internal/page"
	"github.com/brogergvhs/dubfilter/internal/watch"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Languages    []string `yaml:"languages"`
	LegacyMarker *bool    `yaml:"legacy_marker,omitempty"`

	TitleSelector     string `yaml:"title_selector"`
	ContainerSelector string `yaml:"container_selector"`

	Delay   Duration `yaml:"delay"`
	Output  string   `yaml:"output"`
	InPlace bool     `yaml:"in_place"`
	Debug   bool     `yaml:"debug"`
}

// Duration is a time.Duration that reads and writes as "1500ms" in YAML.
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	v, err := time.ParseDuration(strings.TrimSpace(n.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid delay %q: %w", n.Line, n.Value, err)
	}
	*d = Duration(v)

	return nil
}

type Options struct {
	IgnoreConfig      bool
	Debug             bool
	Languages         []string
	NoLegacy          bool
	TitleSelector     string
	ContainerSelector string
	Delay             time.Duration
	Output            string
	InPlace           bool
}

// DefaultLanguages are the dub languages the simulcast calendar lists.
// Japanese is deliberately absent: it is the original audio.
var DefaultLanguages = []string{
	"English",
	"Deutsch",
	"Español (América Latina)",
	"Español (España)",
	"Français",
	"Italiano",
	"Português (Brasil)",
	"Русский",
	"العربية",
	"हिंदी",
}

func DefaultConfig() *Config {
	legacy := true

	return &Config{
		Languages:         append([]string(nil), DefaultLanguages...),
		LegacyMarker:      &legacy,
		TitleSelector:     page.DefaultTitleSelector,
		ContainerSelector: page.DefaultContainerSelector,
		Delay:             Duration(watch.DefaultDelay),
		Output:            "",
		InPlace:           false,
		Debug:             false,
	}
}

func (c *Config) Legacy() bool {
	return c.LegacyMarker == nil || *c.LegacyMarker
}

func (c *Config) Selectors() page.Selectors {
	return page.Selectors{Title: c.TitleSelector, Container: c.ContainerSelector}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `dubfilter config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if len(o.Languages) > 0 {
		c.Languages = o.Languages
	}
	if o.NoLegacy {
		off := false
		c.LegacyMarker = &off
	}
	if o.TitleSelector != "" {
		c.TitleSelector = o.TitleSelector
	}
	if o.ContainerSelector != "" {
		c.ContainerSelector = o.ContainerSelector
	}
	if o.Delay != 0 {
		c.Delay = Duration(o.Delay)
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.InPlace {
		c.InPlace = true
	}
	if o.Debug {
		c.Debug = true
	}
}

// normalizeDefaults fills what a profile left out. A missing or null
// languages key gets the default list; an explicit [] stays empty.
func normalizeDefaults(c *Config) {
	if c.Languages == nil {
		c.Languages = append([]string(nil), DefaultLanguages...)
	}
	if c.TitleSelector == "" {
		c.TitleSelector = page.DefaultTitleSelector
	}
	if c.ContainerSelector == "" {
		c.ContainerSelector = page.DefaultContainerSelector
	}
	if c.Delay <= 0 {
		c.Delay = Duration(watch.DefaultDelay)
	}
}

func (c *Config) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, " -languages: %s\n", strings.Join(c.Languages, ", "))
	_, _ = fmt.Fprintf(w, " -legacy_marker: %t\n", c.Legacy())
	_, _ = fmt.Fprintf(w, " -title_selector: %s\n", c.TitleSelector)
	_, _ = fmt.Fprintf(w, " -container_selector: %s\n", c.ContainerSelector)
	_, _ = fmt.Fprintf(w, " -delay: %s\n", time.Duration(c.Delay))
	if c.Output != "" {
		_, _ = fmt.Fprintf(w, " -output: %s\n", c.Output)
	}
	if c.InPlace {
		_, _ = fmt.Fprintf(w, " -in_place: %t\n", c.InPlace)
	}
	if c.Debug {
		_, _ = fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
}

// CountLanguages reads a profile and returns the size of its language list.
func CountLanguages(path string) (int, error) {
	c, err := loadYAML(path)
	if err != nil {
		return 0, err
	}
	normalizeDefaults(c)

	return len(c.Languages), nil
}
