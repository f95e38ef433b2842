// Package tui is the settings editor for the desktop configuration.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/retrodesk/internal/config"
	"github.com/1broseidon/retrodesk/internal/ipc"
)

// Run opens the settings editor on configPath, or the default config file
// when configPath is empty.
func Run(configPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("settings requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	path := configPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		return err
	}

	m := newModel(path, res, ipc.NewClient())
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
