package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/retrodesk/internal/config"
	"github.com/1broseidon/retrodesk/internal/ipc"
	"github.com/1broseidon/retrodesk/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runDesktop(nil))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runDesktop(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "background":
		os.Exit(runBackground(os.Args[2:]))
	case "launch":
		os.Exit(runLaunch(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "inbox":
		os.Exit(runInbox(os.Args[2:]))
	case "settings":
		os.Exit(runSettings(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		if strings.HasPrefix(os.Args[1], "-") {
			os.Exit(runDesktop(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: retrodesk [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the desktop (default when no command is given)")
	fmt.Fprintln(w, "  status              Show the running desktop's window state")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window toggle       Open or close a window")
	fmt.Fprintln(w, "  window close        Close a window")
	fmt.Fprintln(w, "  window minimize     Flip a window's minimized flag")
	fmt.Fprintln(w, "  window maximize     Flip a window's maximized flag")
	fmt.Fprintln(w, "  window focus        Raise an open window")
	fmt.Fprintln(w, "  window move         Place a window at a desktop cell")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  background          Change the desktop background color")
	fmt.Fprintln(w, "  launch              Toggle Special > Launch")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config init         Write the default configuration file")
	fmt.Fprintln(w, "  settings            Edit the configuration interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  inbox list          List recorded contact submissions")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'retrodesk <command> --help' for command-specific options.")
}

// parseFlags parses args and reports an exit code when the caller should stop.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, true
		}
		return 2, true
	}
	return 0, false
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: retrodesk status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the running desktop's windows via the control socket.")
	}
	if code, stop := parseFlags(fs, args); stop {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printStatus(os.Stdout, status)
	return 0
}

func printStatus(w io.Writer, st *ipc.StatusData) {
	fmt.Fprintf(w, "background:     %s\n", st.Background)
	fmt.Fprintf(w, "launched:       %v\n", st.Launched)
	fmt.Fprintf(w, "shut_down:      %v\n", st.ShutDown)
	fmt.Fprintf(w, "close_mode:     %s\n", st.CloseMode)
	fmt.Fprintf(w, "focused:        %s\n", st.Focused)
	fmt.Fprintf(w, "stack:          %s\n", strings.Join(st.Stack, " < "))
	fmt.Fprintf(w, "uptime_seconds: %d\n", st.UptimeSeconds)
	fmt.Fprintln(w, "windows:")
	for _, ws := range st.Windows {
		printWindow(w, "  ", &ws)
	}
}

func printWindow(w io.Writer, indent string, ws *ipc.WindowStatus) {
	var flags []string
	if ws.Open {
		flags = append(flags, "open")
	} else {
		flags = append(flags, "closed")
	}
	if ws.Minimized {
		flags = append(flags, "minimized")
	}
	if ws.Maximized {
		flags = append(flags, "maximized")
	}
	pos := "auto"
	if ws.Placed {
		pos = fmt.Sprintf("%d,%d", ws.X, ws.Y)
	}
	fmt.Fprintf(w, "%s%-9s %-22s pos=%s\n", indent, ws.Name, strings.Join(flags, ","), pos)
}

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  retrodesk window toggle|close|minimize|maximize|focus <name>")
	fmt.Fprintln(w, "  retrodesk window move <name> <x> <y>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Window names: about, projects, resume, contact")
}

func runWindow(args []string) int {
	if len(args) == 0 {
		printWindowUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printWindowUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()
	var call func(string) (*ipc.WindowStatus, error)
	switch args[0] {
	case "toggle":
		call = client.Toggle
	case "close":
		call = client.Close
	case "minimize":
		call = client.Minimize
	case "maximize":
		call = client.Maximize
	case "focus":
		call = client.Focus
	case "move":
		return runWindowMove(client, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}

	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "window %s requires <name>\n", args[0])
		return 2
	}
	ws, err := call(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindow(os.Stdout, "", ws)
	return 0
}

func runWindowMove(client *ipc.Client, args []string) int {
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: retrodesk window move <name> <x> <y>")
		return 2
	}
	var x, y int
	if _, err := fmt.Sscanf(args[1]+" "+args[2], "%d %d", &x, &y); err != nil {
		fmt.Fprintf(os.Stderr, "invalid position %q %q: %v\n", args[1], args[2], err)
		return 2
	}
	ws, err := client.Move(args[0], x, y)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindow(os.Stdout, "", ws)
	return 0
}

func runBackground(args []string) int {
	fs := flag.NewFlagSet("background", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: retrodesk background <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Colors:")
		for _, sw := range config.Palette {
			fmt.Fprintf(os.Stderr, "  %-14s %s\n", sw.Name, sw.Color)
		}
	}
	if code, stop := parseFlags(fs, args); stop {
		return code
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().SetBackground(strings.Join(fs.Args(), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("background: %s (%s)\n", data.Name, data.Color)
	return 0
}

func runLaunch(args []string) int {
	fs := flag.NewFlagSet("launch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: retrodesk launch")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Toggle the snow and sparkle trail on the running desktop.")
	}
	if code, stop := parseFlags(fs, args); stop {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "launch takes no arguments")
		return 2
	}

	data, err := ipc.NewClient().Launch()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("launched: %v\n", data.Launched)
	return 0
}

func runSettings(args []string) int {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: retrodesk settings [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Edit owner, background, effects and File menu links, then save with ctrl-s.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("path", "", "Config file path (default: ~/.config/retrodesk/config.yaml)")
	if code, stop := parseFlags(fs, args); stop {
		return code
	}
	if err := tui.Run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
