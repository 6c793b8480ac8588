package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	store := NewTokenStore(t.TempDir())

	if got := store.Load(); got != "" {
		t.Errorf("Load() on empty store = %q, want \"\"", got)
	}

	if err := store.Save("tok-123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := store.Load(); got != "tok-123" {
		t.Errorf("Load() = %q, want tok-123", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := store.Load(); got != "" {
		t.Errorf("Load() after Clear() = %q, want \"\"", got)
	}

	// Clearing again must not fail.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestTokenFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewTokenStore(dir)

	if err := store.Save("tok-123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, tokenFileName))
	if err != nil {
		t.Fatalf("failed to stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 600", perm)
	}
}
