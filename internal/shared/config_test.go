package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Resolver.MaxCollectionItems != 100 {
		t.Errorf("expected max_collection_items 100, got %d", config.Resolver.MaxCollectionItems)
	}
	if config.Cookies.RefreshInterval.Std() != 24*time.Hour {
		t.Errorf("expected refresh_interval 24h, got %v", config.Cookies.RefreshInterval.Std())
	}
	if config.Cookies.RefreshLead.Std() != time.Hour {
		t.Errorf("expected refresh_lead 1h, got %v", config.Cookies.RefreshLead.Std())
	}
	if !config.Cookies.Headless {
		t.Error("expected headless default true")
	}
	if config.Cookies.LoginTimeout.Std() != 5*time.Minute {
		t.Errorf("expected login_timeout 5m, got %v", config.Cookies.LoginTimeout.Std())
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses durations and overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[resolver]
name = "ytm"
max_collection_items = 25

[cookies]
path = "/tmp/cookies.json"
refresh_interval = "12h"
refresh_lead = "30m"
auto_refresh = true
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Resolver.MaxCollectionItems != 25 {
			t.Errorf("expected 25, got %d", config.Resolver.MaxCollectionItems)
		}
		if config.Cookies.RefreshInterval.Std() != 12*time.Hour {
			t.Errorf("expected 12h, got %v", config.Cookies.RefreshInterval.Std())
		}
		if !config.Cookies.AutoRefresh {
			t.Error("expected auto_refresh true")
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("bad duration errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[cookies]\nrefresh_interval = \"yesterday\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected error for bad duration")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := CreateConfigFile(path); err == nil {
		t.Fatal("expected error when file exists")
	}
}
