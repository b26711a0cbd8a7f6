package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kelpfs/benthic/block"
)

func writeValidVolume(t *testing.T, path string) {
	t.Helper()
	h := block.NewVolumeHeader()
	h.SetVersion(1)
	h.SetVolumePrefixID(1 << 24)
	h.SetShardIDs([8]byte{0, 0, 0, 0, 0, 0, 0, 0})
	h.Finalize()
	if err := os.WriteFile(path, h, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestCheckOneValidatesGoodHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vol0")
	writeValidVolume(t, path)

	if err := checkOne(path); err != nil {
		t.Fatalf("checkOne: %v", err)
	}
}

func TestCheckOneRejectsCorruptHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vol0")
	writeValidVolume(t, path)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	raw[0] ^= 0xff
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := checkOne(path); err == nil {
		t.Fatalf("expected checkOne to reject a corrupted header")
	}
}

func TestRunCheckallPassesWhenAllValid(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, "vol"+string(rune('0'+i)))
		writeValidVolume(t, paths[i])
	}

	if err := runCheckall(paths); err != nil {
		t.Fatalf("runCheckall: %v", err)
	}
}

func TestRunCheckallFailsWhenOneCorrupt(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "vol0")
	bad := filepath.Join(dir, "vol1")
	writeValidVolume(t, good)
	writeValidVolume(t, bad)

	raw, err := os.ReadFile(bad)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	raw[10] ^= 0xff
	if err := os.WriteFile(bad, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := runCheckall([]string{good, bad}); err == nil {
		t.Fatalf("expected runCheckall to fail with a corrupt volume present")
	}
}
