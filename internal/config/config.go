// Package config loads the editor and server configuration.
//
// Loading order:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern STATIONLAYOUT_SECTION_KEY, for
// example STATIONLAYOUT_SERVER_PORT or STATIONLAYOUT_EDITOR_SNAP_THRESHOLD.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/railyard/stationlayout/pkg/editor"
	"github.com/railyard/stationlayout/pkg/station"
)

// ProjectFile is the configuration file name looked up by LoadProject.
const ProjectFile = "stationlayout.yaml"

// Config is the root configuration.
type Config struct {
	Editor   EditorConfig     `yaml:"editor"`
	Defaults station.Defaults `yaml:"defaults"`
	Legacy   station.Defaults `yaml:"legacy_defaults"`
	Server   ServerConfig     `yaml:"server"`
	Logging  LoggingConfig    `yaml:"logging"`
}

// EditorConfig tunes editing sessions.
type EditorConfig struct {
	SnapThreshold   float64 `yaml:"snap_threshold"`
	SnapDistance    float64 `yaml:"snap_distance"`
	MaxHistory      int     `yaml:"max_history"`
	DebounceMS      int     `yaml:"debounce_ms"`
	PlatformSpacing float64 `yaml:"platform_spacing"`
	OriginX         float64 `yaml:"origin_x"`
	OriginY         float64 `yaml:"origin_y"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
}

// TimeoutsConfig holds HTTP timeouts in seconds.
type TimeoutsConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadProject loads stationlayout.yaml from a project directory, falling
// back to defaults when the file does not exist.
func LoadProject(dir string) (*Config, error) {
	path := filepath.Join(dir, ProjectFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Load("")
	}
	return Load(path)
}

// Default returns a Config with the stock values.
func Default() *Config {
	s := editor.DefaultSettings()
	return &Config{
		Editor: EditorConfig{
			SnapThreshold:   s.SnapThreshold,
			SnapDistance:    s.SnapDistance,
			MaxHistory:      s.MaxHistory,
			DebounceMS:      int(s.Debounce / time.Millisecond),
			PlatformSpacing: s.PlatformSpacing,
			OriginX:         s.OriginX,
			OriginY:         s.OriginY,
		},
		Defaults: station.DefaultGeometry(),
		Legacy:   station.LegacyGeometry(),
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
			Timeouts: TimeoutsConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

func applyEnvOverrides(cfg *Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"STATIONLAYOUT_SERVER_HOST", &cfg.Server.Host},
		{"STATIONLAYOUT_LOG_LEVEL", &cfg.Logging.Level},
		{"STATIONLAYOUT_LOG_FORMAT", &cfg.Logging.Format},
		{"STATIONLAYOUT_LOG_OUTPUT", &cfg.Logging.Output},
	}
	for _, s := range strs {
		if v := os.Getenv(s.key); v != "" {
			*s.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"STATIONLAYOUT_SERVER_PORT", &cfg.Server.Port},
		{"STATIONLAYOUT_EDITOR_MAX_HISTORY", &cfg.Editor.MaxHistory},
		{"STATIONLAYOUT_EDITOR_DEBOUNCE_MS", &cfg.Editor.DebounceMS},
	}
	for _, i := range ints {
		if v := os.Getenv(i.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", i.key, err)
			}
			*i.dst = n
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"STATIONLAYOUT_EDITOR_SNAP_THRESHOLD", &cfg.Editor.SnapThreshold},
		{"STATIONLAYOUT_EDITOR_SNAP_DISTANCE", &cfg.Editor.SnapDistance},
	}
	for _, f := range floats {
		if v := os.Getenv(f.key); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", f.key, err)
			}
			*f.dst = n
		}
	}
	return nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Editor.SnapThreshold <= 0 {
		errs = append(errs, "editor.snap_threshold must be positive")
	}
	if c.Editor.SnapDistance <= 0 {
		errs = append(errs, "editor.snap_distance must be positive")
	}
	if c.Editor.MaxHistory < 2 {
		errs = append(errs, "editor.max_history must be at least 2")
	}
	if c.Editor.DebounceMS < 0 {
		errs = append(errs, "editor.debounce_ms must not be negative")
	}
	if c.Editor.PlatformSpacing < 0 {
		errs = append(errs, "editor.platform_spacing must not be negative")
	}

	errs = append(errs, validateGeometry("defaults", c.Defaults)...)
	errs = append(errs, validateGeometry("legacy_defaults", c.Legacy)...)

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, "logging.format must be json or text")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGeometry(section string, d station.Defaults) []string {
	var errs []string
	positive := []struct {
		name string
		v    float64
	}{
		{"platform_length", d.PlatformLength},
		{"platform_width", d.PlatformWidth},
		{"track_height", d.TrackHeight},
		{"buffer_height", d.BufferHeight},
		{"shop_min_width", d.ShopMinWidth},
		{"shop_max_width", d.ShopMaxWidth},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Sprintf("%s.%s must be positive", section, p.name))
		}
	}
	if d.ShopMinWidth > d.ShopMaxWidth {
		errs = append(errs, section+".shop_min_width must not exceed shop_max_width")
	}
	return errs
}

// EditorSettings converts the configuration into editor settings.
func (c *Config) EditorSettings() editor.Settings {
	return editor.Settings{
		SnapThreshold:   c.Editor.SnapThreshold,
		SnapDistance:    c.Editor.SnapDistance,
		MaxHistory:      c.Editor.MaxHistory,
		Debounce:        time.Duration(c.Editor.DebounceMS) * time.Millisecond,
		PlatformSpacing: c.Editor.PlatformSpacing,
		OriginX:         c.Editor.OriginX,
		OriginY:         c.Editor.OriginY,
		Geometry:        c.Defaults,
		Legacy:          c.Legacy,
	}
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ReadTimeout returns the server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Read) * time.Second
}

// WriteTimeout returns the server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Write) * time.Second
}

// IdleTimeout returns the server idle timeout.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Idle) * time.Second
}
