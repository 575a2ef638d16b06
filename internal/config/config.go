package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/encoding/htmlindex"
)

// Default configuration values.
const (
	// AppName is the application name.
	AppName = "imgsweep"

	// DefaultTimeout is the per-request timeout. Zero means none, matching a
	// browser fetch that waits as long as the server keeps the connection.
	DefaultTimeout time.Duration = 0

	// DefaultMaxBodySize is the per-image body limit. Zero means unlimited.
	DefaultMaxBodySize int64 = 0

	// DefaultTorStartupTimeout is the maximum time to wait for the embedded
	// Tor daemon to bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute
)

// manifestExtensions are the file extensions read as descriptor manifests.
var manifestExtensions = []string{".yaml", ".yml", ".json"}

// Config holds all options for one export run.
// It is populated from CLI flags and passed down explicitly.
type Config struct {
	// Source is the document to export images from: an http(s) page URL,
	// a local HTML file, or a YAML/JSON descriptor manifest.
	Source string

	// OutputDir is the directory images are saved into.
	// Defaults to the user's download directory.
	OutputDir string

	// ArchivePath, when set, saves images into a SQLite Archive file
	// instead of OutputDir.
	ArchivePath string

	// Render loads Source in headless Chromium and enumerates
	// document.images after scripts have run.
	Render bool

	// BrowserURL is the DevTools websocket URL of an already running
	// browser. Empty launches a local one. Only used with Render.
	BrowserURL string

	// ProxyAddress is a SOCKS5 proxy in "host:port" form for all fetches.
	ProxyAddress string

	// UseTor starts an embedded Tor daemon and routes all fetches through it.
	UseTor bool

	// TorStartupTimeout bounds the embedded Tor bootstrap. Only used with UseTor.
	TorStartupTimeout time.Duration

	// Timeout is the per-request timeout. Zero disables it.
	Timeout time.Duration

	// MaxBodySize is the maximum body size in bytes for one image. Zero
	// disables the limit.
	MaxBodySize int64

	// Charset overrides the detected encoding of a static HTML page.
	Charset string

	// Verbose enables debug logging.
	Verbose bool

	// JSONLog switches log output from text to JSON.
	JSONLog bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir:         DefaultOutputDir(),
		Timeout:           DefaultTimeout,
		MaxBodySize:       DefaultMaxBodySize,
		TorStartupTimeout: DefaultTorStartupTimeout,
	}
}

// DefaultOutputDir returns the XDG download directory, where a browser
// would have put the same files.
// On Linux: ~/Downloads (or XDG_DOWNLOAD_DIR)
// On macOS: ~/Downloads
// On Windows: %USERPROFILE%\Downloads
func DefaultOutputDir() string {
	return filepath.Clean(xdg.UserDirs.Download)
}

// IsManifest reports whether source names a descriptor manifest file.
func IsManifest(source string) bool {
	ext := strings.ToLower(filepath.Ext(source))
	for _, m := range manifestExtensions {
		if ext == m {
			return true
		}
	}
	return false
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return ErrNoSource
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.UseTor && c.ProxyAddress != "" {
		return ErrConflictingProxies
	}

	if c.Render && IsManifest(c.Source) {
		return ErrConflictingInputModes
	}
	if !c.Render && c.BrowserURL != "" {
		return ErrConflictingInputModes
	}

	if c.UseTor && c.TorStartupTimeout <= 0 {
		return ErrInvalidTorStartupTimeout
	}

	if c.Charset != "" {
		if _, err := htmlindex.Get(c.Charset); err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownCharset, c.Charset)
		}
	}

	return nil
}
