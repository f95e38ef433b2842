package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/retrodesk/internal/config"
	"github.com/1broseidon/retrodesk/internal/inbox"
	"github.com/1broseidon/retrodesk/internal/ipc"
)

func TestPrintWindow(t *testing.T) {
	tests := []struct {
		name string
		ws   ipc.WindowStatus
		want []string
	}{
		{"closed", ipc.WindowStatus{Name: "about"}, []string{"about", "closed", "pos=auto"}},
		{"placed", ipc.WindowStatus{Name: "resume", Open: true, Placed: true, X: 120, Y: 34}, []string{"open", "pos=120,34"}},
		{"flags", ipc.WindowStatus{Name: "contact", Open: true, Minimized: true, Maximized: true}, []string{"open,minimized,maximized"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printWindow(&buf, "", &tt.ws)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q missing %q", buf.String(), want)
				}
			}
		})
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestRunConfigInitThenValidate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if rc := runConfig([]string{"init"}); rc != 0 {
		t.Fatalf("config init rc=%d, want 0", rc)
	}
	path := filepath.Join(dir, "retrodesk", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if rc := runConfig([]string{"init"}); rc != 1 {
		t.Fatalf("second init rc=%d, want 1", rc)
	}
	if rc := runConfig([]string{"init", "--force"}); rc != 0 {
		t.Fatalf("init --force rc=%d, want 0", rc)
	}
	if rc := runConfig([]string{"validate", "--path", path}); rc != 0 {
		t.Fatalf("validate rc=%d, want 0", rc)
	}
}

func TestRunConfigUsageErrors(t *testing.T) {
	if rc := runConfig(nil); rc != 2 {
		t.Errorf("no args rc=%d, want 2", rc)
	}
	if rc := runConfig([]string{"bogus"}); rc != 2 {
		t.Errorf("unknown rc=%d, want 2", rc)
	}
	if rc := runConfig([]string{"explain"}); rc != 2 {
		t.Errorf("explain without path rc=%d, want 2", rc)
	}
}

func TestRunInboxList(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "inbox.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfgYAML := "inbox:\n  driver: sqlite\n  path: " + dbPath + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}

	rec, err := inbox.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rec.Record(ctx, &inbox.Submission{Name: "Jane", Email: "jane@x.com", Message: "hi"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	rec.Close()

	if rc := runInbox([]string{"list", "--config", cfgPath}); rc != 0 {
		t.Fatalf("inbox list rc=%d, want 0", rc)
	}
	if rc := runInbox([]string{"list", "--config", cfgPath, "--json"}); rc != 0 {
		t.Fatalf("inbox list --json rc=%d, want 0", rc)
	}
}

func TestRunInboxListMemoryDriver(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("inbox:\n  driver: memory\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if rc := runInbox([]string{"list", "--config", cfgPath}); rc != 1 {
		t.Fatalf("inbox list rc=%d, want 1", rc)
	}
}

func TestRenderSubmissions(t *testing.T) {
	out := renderSubmissions([]inbox.Submission{{
		Name:      "Jane",
		Email:     "jane@x.com",
		Message:   strings.Repeat("long message ", 10),
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}})
	for _, want := range []string{"RECEIVED", "Jane", "jane@x.com", "…"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestControlCommandsWithoutDesktop(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("RETRODESK_SOCKET", "")

	if rc := runStatus(nil); rc != 1 {
		t.Errorf("status rc=%d, want 1", rc)
	}
	if rc := runWindow([]string{"toggle", "about"}); rc != 1 {
		t.Errorf("window toggle rc=%d, want 1", rc)
	}
	if rc := runLaunch(nil); rc != 1 {
		t.Errorf("launch rc=%d, want 1", rc)
	}
}

func TestRunWindowUsageErrors(t *testing.T) {
	tests := [][]string{
		nil,
		{"spin", "about"},
		{"toggle"},
		{"move", "about", "1"},
		{"move", "about", "x", "y"},
	}
	for _, args := range tests {
		if rc := runWindow(args); rc != 2 {
			t.Errorf("runWindow(%v) rc=%d, want 2", args, rc)
		}
	}
}
