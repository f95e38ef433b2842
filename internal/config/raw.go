package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawSnowConfig struct {
	Flakes *int `yaml:"flakes"`
	TickMS *int `yaml:"tick_ms"`
}

type RawTrailConfig struct {
	TTLMS *int `yaml:"ttl_ms"`
}

type RawInboxConfig struct {
	Driver *InboxDriver `yaml:"driver"`
	Path   *string      `yaml:"path"`
}

type RawLoggingConfig struct {
	Level     *string `yaml:"level"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

type RawControlConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// RawConfig mirrors Config with optional fields so that files can be layered.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Owner          *string           `yaml:"owner"`
	Tagline        *string           `yaml:"tagline"`
	CloseMode      *string           `yaml:"close_mode"`
	Background     *string           `yaml:"background"`
	GlamourStyle   *string           `yaml:"glamour_style"`
	ContentDir     *string           `yaml:"content_dir"`
	Links          *[]Link           `yaml:"links"`
	Snow           *RawSnowConfig    `yaml:"snow"`
	Trail          *RawTrailConfig   `yaml:"trail"`
	ShutdownFadeMS *int              `yaml:"shutdown_fade_ms"`
	Inbox          *RawInboxConfig   `yaml:"inbox"`
	Logging        *RawLoggingConfig `yaml:"logging"`
	Control        *RawControlConfig `yaml:"control"`
}

// merge overlays o on top of r; set fields in o win.
func (r RawConfig) merge(o RawConfig) RawConfig {
	out := r
	if o.Owner != nil {
		out.Owner = o.Owner
	}
	if o.Tagline != nil {
		out.Tagline = o.Tagline
	}
	if o.CloseMode != nil {
		out.CloseMode = o.CloseMode
	}
	if o.Background != nil {
		out.Background = o.Background
	}
	if o.GlamourStyle != nil {
		out.GlamourStyle = o.GlamourStyle
	}
	if o.ContentDir != nil {
		out.ContentDir = o.ContentDir
	}
	if o.Links != nil {
		out.Links = o.Links
	}
	if o.ShutdownFadeMS != nil {
		out.ShutdownFadeMS = o.ShutdownFadeMS
	}

	if o.Snow != nil {
		snow := RawSnowConfig{}
		if out.Snow != nil {
			snow = *out.Snow
		}
		if o.Snow.Flakes != nil {
			snow.Flakes = o.Snow.Flakes
		}
		if o.Snow.TickMS != nil {
			snow.TickMS = o.Snow.TickMS
		}
		out.Snow = &snow
	}
	if o.Trail != nil {
		trail := RawTrailConfig{}
		if out.Trail != nil {
			trail = *out.Trail
		}
		if o.Trail.TTLMS != nil {
			trail.TTLMS = o.Trail.TTLMS
		}
		out.Trail = &trail
	}
	if o.Inbox != nil {
		inbox := RawInboxConfig{}
		if out.Inbox != nil {
			inbox = *out.Inbox
		}
		if o.Inbox.Driver != nil {
			inbox.Driver = o.Inbox.Driver
		}
		if o.Inbox.Path != nil {
			inbox.Path = o.Inbox.Path
		}
		out.Inbox = &inbox
	}
	if o.Logging != nil {
		logging := RawLoggingConfig{}
		if out.Logging != nil {
			logging = *out.Logging
		}
		if o.Logging.Level != nil {
			logging.Level = o.Logging.Level
		}
		if o.Logging.File != nil {
			logging.File = o.Logging.File
		}
		if o.Logging.MaxSizeMB != nil {
			logging.MaxSizeMB = o.Logging.MaxSizeMB
		}
		if o.Logging.MaxFiles != nil {
			logging.MaxFiles = o.Logging.MaxFiles
		}
		out.Logging = &logging
	}
	if o.Control != nil {
		control := RawControlConfig{}
		if out.Control != nil {
			control = *out.Control
		}
		if o.Control.Enabled != nil {
			control.Enabled = o.Control.Enabled
		}
		out.Control = &control
	}
	return out
}
