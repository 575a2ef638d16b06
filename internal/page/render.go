package page

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/nao1215/imgsweep/internal/model"
)

// enumerateImagesJS collects what the page exposes through document.images.
const enumerateImagesJS = `() => ({
	base: document.baseURI,
	images: Array.from(document.images, (img) => ({
		src: img.src,
		currentSrc: img.currentSrc,
		srcset: img.srcset,
	})),
})`

// Renderer loads pages in headless Chromium and enumerates their images
// after scripts have run.
type Renderer struct {
	// controlURL is the DevTools URL of an existing browser. When empty a
	// local browser is launched for each Render call.
	controlURL string

	// proxyAddress is a SOCKS5 "host:port" the launched browser routes
	// through. Ignored when connecting to an existing browser.
	proxyAddress string

	logger *slog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithBrowserURL connects to a running browser instead of launching one.
func WithBrowserURL(controlURL string) RendererOption {
	return func(r *Renderer) {
		r.controlURL = controlURL
	}
}

// WithBrowserProxy routes the launched browser through a SOCKS5 proxy.
func WithBrowserProxy(address string) RendererOption {
	return func(r *Renderer) {
		r.proxyAddress = address
	}
}

// WithRendererLogger sets the logger.
func WithRendererLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Render opens pageURL, waits for the load event and returns the images
// of the rendered document.
func (r *Renderer) Render(ctx context.Context, pageURL string) (*model.Document, error) {
	controlURL := r.controlURL
	if controlURL == "" {
		l := launcher.New().Context(ctx).Headless(true)
		if r.proxyAddress != "" {
			l = l.Proxy("socks5://" + r.proxyAddress)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		defer l.Cleanup()
		defer l.Kill()
		controlURL = u
	}

	r.logger.Debug("connecting to browser", "control_url", controlURL)

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		if r.controlURL != "" {
			return
		}
		if err := browser.Close(); err != nil {
			r.logger.Debug("failed to close browser", "error", err)
		}
	}()

	p, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", pageURL, err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			r.logger.Debug("failed to close page", "error", err)
		}
	}()

	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed waiting for %s to load: %w", pageURL, err)
	}

	obj, err := p.Eval(enumerateImagesJS)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate images: %w", err)
	}

	return documentFromJSON(obj.Value), nil
}

// documentFromJSON converts the enumeration script result.
func documentFromJSON(v gson.JSON) *model.Document {
	doc := &model.Document{
		BaseURL: v.Get("base").Str(),
		Images:  make([]model.ImageDescriptor, 0),
	}
	for _, img := range v.Get("images").Arr() {
		doc.Images = append(doc.Images, model.ImageDescriptor{
			Source:        img.Get("src").Str(),
			CurrentSource: img.Get("currentSrc").Str(),
			SrcSet:        img.Get("srcset").Str(),
		})
	}
	return doc
}
