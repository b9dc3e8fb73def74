package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// readRecords parses every JSON record in the log file.
func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("unparseable log line %q: %v", scanner.Text(), err)
		}
		records = append(records, rec)
	}
	return records
}

func TestLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "medley.log")

	log, err := NewLogger(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info("dispatching tasks", "count", 3)
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records := readRecords(t, path)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0]["msg"] != "dispatching tasks" {
		t.Errorf("msg = %v, want %q", records[0]["msg"], "dispatching tasks")
	}
	if records[0]["count"] != float64(3) {
		t.Errorf("count = %v, want 3", records[0]["count"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medley.log")

	log, err := NewLogger(path, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")
	log.Error("kept")
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records := readRecords(t, path)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
}

func TestChildLoggerAttrs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medley.log")

	log, err := NewLogger(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	child := log.WithCommand("search").WithProvider("nixpkgs")
	child.Info("cache miss", "query", "vim")

	// The parent must not inherit the child's attributes.
	log.Info("plain")
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records := readRecords(t, path)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	withAttrs := records[0]
	if withAttrs["command"] != "search" || withAttrs["provider"] != "nixpkgs" {
		t.Errorf("child record missing attrs: %v", withAttrs)
	}
	if withAttrs["query"] != "vim" {
		t.Errorf("per-call arg missing: %v", withAttrs)
	}

	plain := records[1]
	if _, has := plain["provider"]; has {
		t.Error("parent logger leaked child attributes")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	log := NopLogger()
	log.Info("discarded")
	log.WithProvider("flatpak").Error("also discarded")
	if err := log.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
