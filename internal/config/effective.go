package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Owner != nil {
		cfg.Owner = *raw.Owner
	}
	if raw.Tagline != nil {
		cfg.Tagline = *raw.Tagline
	}
	if raw.CloseMode != nil {
		cfg.CloseMode = strings.ToLower(strings.TrimSpace(*raw.CloseMode))
	}
	if raw.Background != nil {
		// Normalize to the palette name so hex and name spellings compare equal.
		if sw, ok := LookupSwatch(*raw.Background); ok {
			cfg.Background = sw.Name
		} else {
			cfg.Background = *raw.Background
		}
	}
	if raw.GlamourStyle != nil {
		cfg.GlamourStyle = *raw.GlamourStyle
	}
	if raw.ContentDir != nil {
		cfg.ContentDir = *raw.ContentDir
	}
	if raw.Links != nil {
		links := make([]Link, len(*raw.Links))
		copy(links, *raw.Links)
		cfg.Links = links
	}
	if raw.ShutdownFadeMS != nil {
		cfg.ShutdownFadeMS = *raw.ShutdownFadeMS
	}

	if raw.Snow != nil {
		if raw.Snow.Flakes != nil {
			cfg.Snow.Flakes = *raw.Snow.Flakes
		}
		if raw.Snow.TickMS != nil {
			cfg.Snow.TickMS = *raw.Snow.TickMS
		}
	}
	if raw.Trail != nil && raw.Trail.TTLMS != nil {
		cfg.Trail.TTLMS = *raw.Trail.TTLMS
	}
	if raw.Inbox != nil {
		if raw.Inbox.Driver != nil {
			cfg.Inbox.Driver = InboxDriver(strings.ToLower(string(*raw.Inbox.Driver)))
		}
		if raw.Inbox.Path != nil {
			cfg.Inbox.Path = *raw.Inbox.Path
		}
	}
	if raw.Logging != nil {
		if raw.Logging.Level != nil {
			cfg.Logging.Level = strings.ToLower(*raw.Logging.Level)
		}
		if raw.Logging.File != nil {
			cfg.Logging.File = *raw.Logging.File
		}
		if raw.Logging.MaxSizeMB != nil {
			cfg.Logging.MaxSizeMB = *raw.Logging.MaxSizeMB
		}
		if raw.Logging.MaxFiles != nil {
			cfg.Logging.MaxFiles = *raw.Logging.MaxFiles
		}
	}
	if raw.Control != nil && raw.Control.Enabled != nil {
		cfg.Control.Enabled = *raw.Control.Enabled
	}

	return cfg, nil
}
