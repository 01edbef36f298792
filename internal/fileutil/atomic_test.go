package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	if err := WriteFileAtomic(path, []byte("first"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0600); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("File content mismatch: got %q, want %q", data, "second")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0600)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the report in %s, found %d entries", dir, len(entries))
	}
}

func TestWriteFileAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	if err := WriteFileAtomic("/nonexistent/dir/report.txt", []byte("data"), 0644); err == nil {
		t.Error("Expected error when writing to non-existent directory")
	}
}

func TestWriteJSONAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "summary.json")
	in := map[string]any{"rounds": 10, "policy": "ramp"}
	if err := WriteJSONAtomic(path, in, 0644); err != nil {
		t.Fatalf("WriteJSONAtomic failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("Expected trailing newline")
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Invalid JSON written: %v", err)
	}
	if out["policy"] != "ramp" || out["rounds"] != float64(10) {
		t.Errorf("Unexpected round trip: %v", out)
	}
}

func TestWriteJSONAtomicUnencodable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := WriteJSONAtomic(path, map[string]any{"ch": make(chan int)}, 0644); err == nil {
		t.Error("Expected encoding error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no file after encoding error")
	}
}
