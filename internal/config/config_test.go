package config

import (
	"errors"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns the documented defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default OutputDir is the download directory", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir == "" {
			t.Error("expected a non-empty OutputDir")
		}
		if cfg.OutputDir != DefaultOutputDir() {
			t.Errorf("expected OutputDir %q, got %q", DefaultOutputDir(), cfg.OutputDir)
		}
	})

	t.Run("default Timeout is disabled", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 0 {
			t.Errorf("expected Timeout to be 0, got %v", cfg.Timeout)
		}
	})

	t.Run("default MaxBodySize is unlimited", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxBodySize != 0 {
			t.Errorf("expected MaxBodySize to be 0, got %d", cfg.MaxBodySize)
		}
	})

	t.Run("default TorStartupTimeout is 3 minutes", func(t *testing.T) {
		t.Parallel()
		if cfg.TorStartupTimeout != 3*time.Minute {
			t.Errorf("expected TorStartupTimeout to be 3m, got %v", cfg.TorStartupTimeout)
		}
	})

	t.Run("proxying and rendering are off", func(t *testing.T) {
		t.Parallel()
		if cfg.UseTor || cfg.ProxyAddress != "" || cfg.Render {
			t.Errorf("expected no proxy and no render, got %+v", cfg)
		}
	})
}

// TestConfigValidate tests one validation rule per case.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Source = "https://example.com/gallery.html"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "valid config returns nil", modify: func(*Config) {}},
		{name: "empty source", modify: func(c *Config) { c.Source = "" }, wantErr: ErrNoSource},
		{name: "blank source", modify: func(c *Config) { c.Source = "   " }, wantErr: ErrNoSource},
		{name: "negative timeout", modify: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "positive timeout", modify: func(c *Config) { c.Timeout = 30 * time.Second }},
		{name: "negative max body size", modify: func(c *Config) { c.MaxBodySize = -1 }, wantErr: ErrInvalidMaxBodySize},
		{
			name:    "proxy and tor together",
			modify:  func(c *Config) { c.UseTor = true; c.ProxyAddress = "127.0.0.1:9050" },
			wantErr: ErrConflictingProxies,
		},
		{name: "proxy alone", modify: func(c *Config) { c.ProxyAddress = "127.0.0.1:1080" }},
		{
			name:    "render with manifest",
			modify:  func(c *Config) { c.Render = true; c.Source = "images.yaml" },
			wantErr: ErrConflictingInputModes,
		},
		{
			name:    "browser without render",
			modify:  func(c *Config) { c.BrowserURL = "ws://127.0.0.1:9222/devtools/browser/x" },
			wantErr: ErrConflictingInputModes,
		},
		{
			name:   "render with browser",
			modify: func(c *Config) { c.Render = true; c.BrowserURL = "ws://127.0.0.1:9222/devtools/browser/x" },
		},
		{
			name:    "tor with zero startup timeout",
			modify:  func(c *Config) { c.UseTor = true; c.TorStartupTimeout = 0 },
			wantErr: ErrInvalidTorStartupTimeout,
		},
		{
			name:   "zero startup timeout without tor is ignored",
			modify: func(c *Config) { c.TorStartupTimeout = 0 },
		},
		{name: "known charset", modify: func(c *Config) { c.Charset = "shift_jis" }},
		{name: "unknown charset", modify: func(c *Config) { c.Charset = "klingon-8" }, wantErr: ErrUnknownCharset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestIsManifest(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"images.yaml":                   true,
		"images.YML":                    true,
		"dir/capture.json":              true,
		"page.html":                     false,
		"https://example.com/":          false,
		"https://example.com/feed.json": true,
		"":                              false,
	}

	for source, want := range tests {
		if got := IsManifest(source); got != want {
			t.Errorf("IsManifest(%q) = %v, want %v", source, got, want)
		}
	}
}
