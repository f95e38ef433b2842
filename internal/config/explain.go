package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	owner
//	close_mode
//	background
//	links
//	snow.flakes
//	inbox.driver
//	logging.level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	leaf := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, fmt.Errorf("%s has no children", parts[0])
		}
		return v, nil
	}
	child := func(values map[string]any) (any, error) {
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path %q", path)
		}
		v, ok := values[parts[1]]
		if !ok {
			return nil, fmt.Errorf("unknown path %q", path)
		}
		return v, nil
	}

	switch parts[0] {
	case "owner":
		return leaf(cfg.Owner)
	case "tagline":
		return leaf(cfg.Tagline)
	case "close_mode":
		return leaf(cfg.CloseMode)
	case "background":
		return leaf(cfg.Background)
	case "glamour_style":
		return leaf(cfg.GlamourStyle)
	case "content_dir":
		return leaf(cfg.ContentDir)
	case "links":
		return leaf(cfg.Links)
	case "shutdown_fade_ms":
		return leaf(cfg.ShutdownFadeMS)
	case "snow":
		return child(map[string]any{"flakes": cfg.Snow.Flakes, "tick_ms": cfg.Snow.TickMS})
	case "trail":
		return child(map[string]any{"ttl_ms": cfg.Trail.TTLMS})
	case "inbox":
		return child(map[string]any{"driver": string(cfg.Inbox.Driver), "path": cfg.Inbox.Path})
	case "logging":
		return child(map[string]any{
			"level":       cfg.Logging.Level,
			"file":        cfg.Logging.File,
			"max_size_mb": cfg.Logging.MaxSizeMB,
			"max_files":   cfg.Logging.MaxFiles,
		})
	case "control":
		return child(map[string]any{"enabled": cfg.Control.Enabled})
	default:
		return nil, fmt.Errorf("unknown path %q", path)
	}
}
