package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestParseJSONConfigOverridesFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	want := Config{Volume: "/vol/0", DataShard: 6, ParityShard: 3, ShardSize: 4080, Seconds: 5}
	raw, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := Config{DataShard: 1, ParityShard: 1}
	if err := parseJSONConfig(&got, path); err != nil {
		t.Fatalf("parseJSONConfig: %v", err)
	}
	if got != want {
		t.Fatalf("config = %+v, want %+v", got, want)
	}
}

func TestParseJSONConfigMissingFile(t *testing.T) {
	var c Config
	if err := parseJSONConfig(&c, "/nonexistent/path.json"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
