package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/retrodesk/internal/config"
	"github.com/1broseidon/retrodesk/internal/content"
	"github.com/1broseidon/retrodesk/internal/desktop"
	"github.com/1broseidon/retrodesk/internal/inbox"
	"github.com/1broseidon/retrodesk/internal/ipc"
	"github.com/1broseidon/retrodesk/internal/logging"
)

func runDesktop(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: retrodesk run [--config PATH] [--no-control]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the desktop in the current terminal.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("config", "", "Config file path (default: ~/.config/retrodesk/config.yaml)")
	noControl := fs.Bool("no-control", false, "Do not listen on the control socket")
	if code, stop := parseFlags(fs, args); stop {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "retrodesk needs an interactive terminal")
		return 1
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	logger, closeLog := openLogger(cfg)
	defer closeLog()
	logger.Info("retrodesk starting", "config_files", res.Files, "close_mode", cfg.CloseMode, "inbox", cfg.Inbox.Driver)

	inboxPath, err := cfg.InboxPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rec, err := inbox.Open(string(cfg.Inbox.Driver), inboxPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rec.Close()

	contentDir, err := cfg.ContentPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	pages, err := content.Load(contentDir, cfg.GlamourStyle)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, name := range content.Pages {
		logger.Debug("page loaded", "page", name, "origin", pages.Origin(name))
	}

	m, err := desktop.New(desktop.Options{
		Config:   cfg,
		Pages:    pages,
		Recorder: rec,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if cfg.Control.Enabled && !*noControl {
		server, err := ipc.NewServer(desktop.NewProgramDispatcher(p), logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := server.Start(); err != nil {
			// Remote control is optional.
			logger.Warn("control socket unavailable", "error", err)
			if errors.Is(err, ipc.ErrSocketInUse) {
				fmt.Fprintln(os.Stderr, "Warning: another retrodesk owns the control socket; remote control disabled")
			}
		} else {
			defer server.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		logger.Error("desktop exited with error", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Info("retrodesk stopped")
	return 0
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// openLogger never fails: a log file that cannot be opened is reported once
// and logging is discarded.
func openLogger(cfg *config.Config) (*slog.Logger, func()) {
	file, err := cfg.LogFile()
	if err == nil {
		var logger *slog.Logger
		var closer interface{ Close() error }
		logger, closer, err = logging.New(logging.Options{
			Level:     logging.ParseLevel(cfg.Logging.Level),
			FilePath:  file,
			MaxSizeMB: cfg.Logging.MaxSizeMB,
			MaxFiles:  cfg.Logging.MaxFiles,
		})
		if err == nil {
			return logger, func() { _ = closer.Close() }
		}
	}
	fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	return logging.Discard(), func() {}
}
