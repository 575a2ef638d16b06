package page

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/imgsweep/internal/config"
	"github.com/nao1215/imgsweep/internal/model"
	"github.com/nao1215/imgsweep/internal/transport"
)

// Fetcher retrieves a remote document. *transport.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (*transport.Resource, error)
}

// Loader turns a source string into an enumerated document.
type Loader struct {
	fetcher  Fetcher
	renderer *Renderer
	render   bool
	charset  string
	logger   *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRenderer enables rendered enumeration through r for page sources.
func WithRenderer(r *Renderer) LoaderOption {
	return func(l *Loader) {
		l.renderer = r
		l.render = true
	}
}

// WithPageCharset overrides charset detection for static HTML.
func WithPageCharset(name string) LoaderOption {
	return func(l *Loader) {
		l.charset = name
	}
}

// WithLoaderLogger sets the logger.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader that fetches remote sources with fetcher.
func NewLoader(fetcher Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{fetcher: fetcher}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load enumerates the images of source.
//
// Sources starting with http:// or https:// are fetched. Anything else is
// a local path. Files ending in .yaml, .yml or .json are manifests; the
// rest are HTML pages. A manifest without a base resolves relative
// references against its own location. A remote document cannot declare a
// file: base.
func (l *Loader) Load(ctx context.Context, source string) (*model.Document, error) {
	location, localPath, err := locate(source)
	if err != nil {
		return nil, err
	}

	manifest := config.IsManifest(location.Path)
	l.logger.Debug("loading document",
		"source", location.String(),
		"manifest", manifest,
		"render", l.render,
	)

	if l.render && !manifest {
		if l.renderer == nil {
			return nil, ErrNoRenderer
		}
		return l.renderer.Render(ctx, location.String())
	}

	var data []byte
	contentType := ""
	if localPath == "" {
		res, err := l.fetcher.Fetch(ctx, location.String())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
		}
		data = res.Data
		contentType = res.ContentType
	} else {
		data, err = os.ReadFile(localPath) //nolint:gosec // The user names the file to read
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
	}

	if manifest {
		doc, err := ParseManifest(data, location.String())
		if err != nil {
			return nil, err
		}
		if declared, err := url.Parse(doc.BaseURL); err != nil {
			doc.BaseURL = location.String()
		} else {
			doc.BaseURL = declaredBase(location, location.ResolveReference(declared)).String()
		}
		return doc, nil
	}

	var opts []ParserOption
	if l.charset != "" {
		opts = append(opts, WithCharset(l.charset))
	}
	parser, err := NewParser(location.String(), opts...)
	if err != nil {
		return nil, err
	}
	return parser.Parse(bytes.NewReader(data), contentType)
}

// IsLocal reports whether source is read from the local filesystem rather
// than fetched over the network. Only local documents may reference file:
// URLs.
func IsLocal(source string) bool {
	_, localPath, err := locate(source)
	return err == nil && localPath != ""
}

// locate returns the URL of source and, for local sources, the absolute
// path to read. Local paths become file: URLs.
func locate(source string) (*url.URL, string, error) {
	source = strings.TrimSpace(source)
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := url.Parse(source)
		if err != nil {
			return nil, "", fmt.Errorf("invalid source URL %q: %w", source, err)
		}
		return u, "", nil
	}

	path := source
	if strings.HasPrefix(lower, "file://") {
		u, err := url.Parse(source)
		if err != nil {
			return nil, "", fmt.Errorf("invalid source URL %q: %w", source, err)
		}
		path = filepath.FromSlash(u.Path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve %s: %w", source, err)
	}

	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return &url.URL{Scheme: "file", Path: slashed}, abs, nil
}
