package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Swatch is a named desktop background color.
type Swatch struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Palette is the fixed set of background colors offered in the View menu.
var Palette = []Swatch{
	{Name: "Blue Sky", Color: "#66a4ff"},
	{Name: "Light Green", Color: "#98fb98"},
	{Name: "Light Salmon", Color: "#ffa07a"},
}

// LookupSwatch finds a palette entry by name or hex color, case-insensitively.
func LookupSwatch(s string) (Swatch, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, sw := range Palette {
		if strings.ToLower(sw.Name) == needle || strings.ToLower(sw.Color) == needle {
			return sw, true
		}
	}
	return Swatch{}, false
}

// Link is an entry of the File menu.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// SnowConfig tunes the Special > Launch snowfall.
type SnowConfig struct {
	Flakes int `yaml:"flakes"`
	TickMS int `yaml:"tick_ms"`
}

// TrailConfig tunes the cursor trail shown while launched.
type TrailConfig struct {
	TTLMS int `yaml:"ttl_ms"`
}

// InboxDriver selects where contact submissions are recorded.
type InboxDriver string

const (
	InboxMemory InboxDriver = "memory"
	InboxSQLite InboxDriver = "sqlite"
)

// InboxConfig configures local recording of contact submissions.
type InboxConfig struct {
	Driver InboxDriver `yaml:"driver"`
	// Path is the sqlite database file (sqlite driver only).
	Path string `yaml:"path,omitempty"`
}

// LoggingConfig configures the diagnostic log file.
type LoggingConfig struct {
	// Level controls verbosity: debug, info, warn, error
	Level string `yaml:"level"`
	// File is the log file path (default: ~/.local/state/retrodesk/retrodesk.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files"`
}

// ControlConfig configures the unix-socket control channel.
type ControlConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the effective retrodesk configuration.
type Config struct {
	Owner          string        `yaml:"owner"`
	Tagline        string        `yaml:"tagline,omitempty"`
	CloseMode      string        `yaml:"close_mode"`
	Background     string        `yaml:"background"`
	GlamourStyle   string        `yaml:"glamour_style"`
	ContentDir     string        `yaml:"content_dir,omitempty"`
	Links          []Link        `yaml:"links"`
	Snow           SnowConfig    `yaml:"snow"`
	Trail          TrailConfig   `yaml:"trail"`
	ShutdownFadeMS int           `yaml:"shutdown_fade_ms"`
	Inbox          InboxConfig   `yaml:"inbox"`
	Logging        LoggingConfig `yaml:"logging"`
	Control        ControlConfig `yaml:"control"`
}

const (
	DefaultSnowFlakes     = 50
	DefaultSnowTickMS     = 120
	DefaultTrailTTLMS     = 500
	DefaultShutdownFadeMS = 500
	DefaultLogMaxSizeMB   = 10
	DefaultLogMaxFiles    = 3
)

// Clone returns a copy that shares no slices with c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Links = append([]Link(nil), c.Links...)
	return &out
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Owner:        "Alex Firestone",
		Tagline:      "full-stack engineer, founder, forward deployed engineer",
		CloseMode:    "reset",
		Background:   Palette[0].Name,
		GlamourStyle: "dark",
		Links: []Link{
			{Label: "Twitter", URL: "https://twitter.com/alexfirestone"},
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/alexfirestone"},
			{Label: "Email", URL: "mailto:alex@example.com"},
			{Label: "Instagram", URL: "https://www.instagram.com/alexfirestone"},
		},
		Snow: SnowConfig{
			Flakes: DefaultSnowFlakes,
			TickMS: DefaultSnowTickMS,
		},
		Trail:          TrailConfig{TTLMS: DefaultTrailTTLMS},
		ShutdownFadeMS: DefaultShutdownFadeMS,
		Inbox:          InboxConfig{Driver: InboxMemory},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: DefaultLogMaxSizeMB,
			MaxFiles:  DefaultLogMaxFiles,
		},
		Control: ControlConfig{Enabled: true},
	}
}

// BackgroundSwatch returns the palette entry selected by Background.
func (c *Config) BackgroundSwatch() Swatch {
	if sw, ok := LookupSwatch(c.Background); ok {
		return sw
	}
	return Palette[0]
}

// LogFile returns the configured log path or the default under the XDG state
// directory.
func (c *Config) LogFile() (string, error) {
	if c.Logging.File != "" {
		return expandHome(c.Logging.File)
	}
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "retrodesk.log"), nil
}

// InboxPath returns the sqlite inbox path, defaulting under the XDG data dir.
func (c *Config) InboxPath() (string, error) {
	if c.Inbox.Path != "" {
		return expandHome(c.Inbox.Path)
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "inbox.db"), nil
}

// ContentPath resolves content_dir, or returns "" when unset.
func (c *Config) ContentPath() (string, error) {
	if c.ContentDir == "" {
		return "", nil
	}
	return expandHome(c.ContentDir)
}

// Save writes the config to the default location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates and writes the config to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the effective config.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return &ValidationError{Path: "owner", Err: fmt.Errorf("owner is required")}
	}
	switch c.CloseMode {
	case "reset", "preserve":
	default:
		return &ValidationError{Path: "close_mode", Err: fmt.Errorf("close_mode must be one of: reset, preserve")}
	}
	if _, ok := LookupSwatch(c.Background); !ok {
		names := make([]string, 0, len(Palette))
		for _, sw := range Palette {
			names = append(names, sw.Name)
		}
		return &ValidationError{Path: "background", Err: fmt.Errorf("background must be one of: %s", strings.Join(names, ", "))}
	}
	if strings.TrimSpace(c.GlamourStyle) == "" {
		return &ValidationError{Path: "glamour_style", Err: fmt.Errorf("glamour_style must not be empty")}
	}
	for i, l := range c.Links {
		p := fmt.Sprintf("links[%d]", i)
		if strings.TrimSpace(l.Label) == "" {
			return &ValidationError{Path: "links", Err: fmt.Errorf("%s: label is required", p)}
		}
		u, err := url.Parse(l.URL)
		if err != nil || u.Scheme == "" {
			return &ValidationError{Path: "links", Err: fmt.Errorf("%s: url %q must be absolute", p, l.URL)}
		}
	}
	if c.Snow.Flakes < 0 || c.Snow.Flakes > 500 {
		return &ValidationError{Path: "snow.flakes", Err: fmt.Errorf("snow.flakes must be between 0 and 500")}
	}
	if c.Snow.TickMS < 16 {
		return &ValidationError{Path: "snow.tick_ms", Err: fmt.Errorf("snow.tick_ms must be >= 16")}
	}
	if c.Trail.TTLMS <= 0 {
		return &ValidationError{Path: "trail.ttl_ms", Err: fmt.Errorf("trail.ttl_ms must be > 0")}
	}
	if c.ShutdownFadeMS < 0 {
		return &ValidationError{Path: "shutdown_fade_ms", Err: fmt.Errorf("shutdown_fade_ms must be >= 0")}
	}
	switch c.Inbox.Driver {
	case InboxMemory, InboxSQLite:
	default:
		return &ValidationError{Path: "inbox.driver", Err: fmt.Errorf("inbox.driver must be one of: memory, sqlite")}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("logging.level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB <= 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("logging.max_size_mb must be > 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("logging.max_files must be >= 0")}
	}
	return nil
}

func expandHome(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
	}
	return p, nil
}

func stateDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "retrodesk"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "retrodesk"), nil
}

func dataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "retrodesk"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "retrodesk"), nil
}
