package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/1broseidon/retrodesk/internal/config"
	"github.com/1broseidon/retrodesk/internal/inbox"
)

func printInboxUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: retrodesk inbox list [--config PATH] [--json]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "List contact submissions recorded by the sqlite inbox.")
}

func runInbox(args []string) int {
	if len(args) == 0 {
		printInboxUsage(os.Stderr)
		return 2
	}
	switch args[0] {
	case "list":
		return runInboxList(args[1:])
	case "help", "-h", "--help":
		printInboxUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown inbox command: %s\n\n", args[0])
		printInboxUsage(os.Stderr)
		return 2
	}
}

func runInboxList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/retrodesk/config.yaml)")
	jsonOut := fs.Bool("json", false, "Output submissions as JSON")
	if code, stop := parseFlags(fs, args); stop {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if cfg.Inbox.Driver != config.InboxSQLite {
		fmt.Fprintf(os.Stderr, "inbox driver is %q; submissions are only kept with driver sqlite\n", cfg.Inbox.Driver)
		return 1
	}
	dbPath, err := cfg.InboxPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rec, err := inbox.OpenSQLite(dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rec.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	subs, err := rec.List(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(subs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if len(subs) == 0 {
		fmt.Println("no submissions")
		return 0
	}
	fmt.Println(renderSubmissions(subs))
	return 0
}

func renderSubmissions(subs []inbox.Submission) string {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Name,
			s.Email,
			ansi.Truncate(s.Message, 48, "…"),
		})
	}
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("RECEIVED", "NAME", "EMAIL", "MESSAGE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}
