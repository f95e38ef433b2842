// Package content holds the portfolio pages shown in the desktop windows.
package content

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

//go:embed pages/*.md
var builtin embed.FS

// Page names with a markdown body. The contact window is a form, not a page.
var Pages = []string{"about", "projects", "resume"}

// ErrUnknownPage is returned for a name outside Pages.
var ErrUnknownPage = errors.New("unknown page")

// Library serves page markdown and caches rendered output per width.
type Library struct {
	style   string
	sources map[string]string
	origins map[string]string

	mu    sync.Mutex
	cache map[cacheKey]string
}

type cacheKey struct {
	page  string
	width int
}

// Load reads the built-in pages and replaces any that exist as <name>.md in
// overrideDir. An empty overrideDir uses the built-ins only.
func Load(overrideDir, style string) (*Library, error) {
	if style == "" {
		style = "dark"
	}
	lib := &Library{
		style:   style,
		sources: make(map[string]string, len(Pages)),
		origins: make(map[string]string, len(Pages)),
		cache:   make(map[cacheKey]string),
	}

	for _, name := range Pages {
		data, err := builtin.ReadFile("pages/" + name + ".md")
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in page %s: %w", name, err)
		}
		lib.sources[name] = string(data)
		lib.origins[name] = "builtin"

		if overrideDir == "" {
			continue
		}
		path := filepath.Join(overrideDir, name+".md")
		data, err = os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read page override %s: %w", path, err)
		}
		lib.sources[name] = string(data)
		lib.origins[name] = path
	}
	return lib, nil
}

// Markdown returns the raw markdown of a page.
func (l *Library) Markdown(name string) (string, error) {
	src, ok := l.sources[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, name)
	}
	return src, nil
}

// Origin reports where a page was loaded from: "builtin" or a file path.
func (l *Library) Origin(name string) string {
	return l.origins[name]
}

// Render returns the page rendered by glamour, word-wrapped to width.
func (l *Library) Render(name string, width int) (string, error) {
	src, err := l.Markdown(name)
	if err != nil {
		return "", err
	}
	if width < 10 {
		width = 10
	}

	key := cacheKey{page: name, width: width}
	l.mu.Lock()
	if out, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return out, nil
	}
	l.mu.Unlock()

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(l.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	out = strings.Trim(out, "\n")

	l.mu.Lock()
	l.cache[key] = out
	l.mu.Unlock()
	return out, nil
}
