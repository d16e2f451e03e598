package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routeguard.yaml")

	initial := `
filters:
  - pattern: "/*"
    filters: ["authc"]
`
	if err := os.WriteFile(path, []byte(initial), 0600); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(WithConfigFile(path))
	if _, err := loader.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(loader, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	updated := `
filters:
  - pattern: "/login"
    filters: ["anon"]
  - pattern: "/*"
    filters: ["authc"]
`
	// Give the watcher a moment to be registered before the write.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(updated), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if len(cfg.Filters) != 2 {
			t.Errorf("reloaded Filters = %d rules, want 2", len(cfg.Filters))
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherDropsInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routeguard.yaml")
	if err := os.WriteFile(path, []byte("views:\n  login: \"/signin\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(WithConfigFile(path))
	if _, err := loader.Load(); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(loader, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	time.Sleep(100 * time.Millisecond)
	bad := "filters:\n  - pattern: \"/x\"\n    filters: [\"bogus\"]\n"
	if err := os.WriteFile(path, []byte(bad), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("invalid configuration was delivered")
	case <-time.After(2 * time.Second):
		// Dropped as expected.
	}
}
