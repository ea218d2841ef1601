package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LLM.APIKey != "${OPENAI_API_KEY}" {
		t.Error("expected openai API key placeholder")
	}
	if cfg.Chapters.TargetCount != 5 {
		t.Errorf("target count = %d, want 5", cfg.Chapters.TargetCount)
	}
	if cfg.Storage.Provider != "local" {
		t.Errorf("storage provider = %q, want local", cfg.Storage.Provider)
	}
	if cfg.Notify.Email.Configured() {
		t.Error("default email config must be disabled")
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("INKWELL_TEST_SECRET", "s3cret")
		if got := ResolveEnvVars("${INKWELL_TEST_SECRET}"); got != "s3cret" {
			t.Errorf("got %q, want s3cret", got)
		}
	})

	t.Run("missing variable resolves to empty", func(t *testing.T) {
		if got := ResolveEnvVars("${INKWELL_TEST_MISSING_VAR}"); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("plain strings pass through", func(t *testing.T) {
		if got := ResolveEnvVars("plain"); got != "plain" {
			t.Errorf("got %q, want plain", got)
		}
	})
}

func TestEmailConfigured(t *testing.T) {
	cfg := EmailConfig{Host: "smtp.example.com", Port: 587, User: "u@example.com", Password: "pw", To: "e@example.com"}
	if !cfg.Configured() {
		t.Error("fully populated config should be enabled")
	}

	partial := cfg
	partial.Password = ""
	if partial.Configured() {
		t.Error("missing password must disable the channel")
	}
}

func TestResolvedPasswordStripsQuotes(t *testing.T) {
	cfg := EmailConfig{Password: `"abcd efgh"`}
	if got := cfg.ResolvedPassword(); got != "abcd efgh" {
		t.Errorf("got %q, want unquoted password", got)
	}
}

func TestManagerOnChange(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	content := "chapters:\n  target_count: 7\n"
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	if got := mgr.Get().Chapters.TargetCount; got != 7 {
		t.Errorf("target count = %d, want 7", got)
	}

	// Register multiple callbacks
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 2 {
		t.Errorf("expected 2 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManagerWatchConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	content := "worker:\n  limit: 5\n"
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	if got := mgr.Get().Worker.Limit; got != 5 {
		t.Errorf("initial worker limit = %d, want 5", got)
	}

	var callbackCount atomic.Int32
	var lastLimit atomic.Int32
	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastLimit.Store(int32(cfg.Worker.Limit))
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("worker:\n  limit: 9\n"), 0o644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	// Wait for the watcher to detect the change (fsnotify is async)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := lastLimit.Load(); got != 9 {
		t.Errorf("reloaded worker limit = %d, want 9", got)
	}
	if got := mgr.Get().Worker.Limit; got != 9 {
		t.Errorf("Get() after reload = %d, want 9", got)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"llm:", "worker:", "${OPENAI_API_KEY}"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("written config missing %q", want)
		}
	}
}
