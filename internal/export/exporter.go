package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/imgsweep/internal/metadata"
	"github.com/nao1215/imgsweep/internal/model"
	"github.com/nao1215/imgsweep/internal/storage"
	"github.com/nao1215/imgsweep/internal/transport"
)

// Fetcher retrieves the bytes behind a URL.
// *transport.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (*transport.Resource, error)
}

// Exporter fetches an image and hands it to a Saver.
type Exporter struct {
	fetcher Fetcher
	saver   storage.Saver

	// inspect enables the EXIF notice for saved images.
	inspect bool

	logger *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for informational notices.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithMetadataNotice logs an Info notice when a saved image carries
// identifying EXIF tags.
func WithMetadataNotice(enabled bool) Option {
	return func(e *Exporter) {
		e.inspect = enabled
	}
}

// New creates an Exporter.
func New(fetcher Fetcher, saver storage.Saver, opts ...Option) *Exporter {
	e := &Exporter{
		fetcher: fetcher,
		saver:   saver,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export fetches url and saves it as the successIndex-th image.
//
// The outcome is a failure if either the fetch or the save fails. In both
// cases the caller must not consume successIndex.
func (e *Exporter) Export(ctx context.Context, url string, successIndex int) model.Outcome {
	res, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return model.Failed(fmt.Errorf("%w: %w", ErrFetch, err))
	}

	name := Filename(res.ContentType, successIndex)
	if err := e.saver.Save(ctx, name, res.Data); err != nil {
		return model.Failed(fmt.Errorf("%w: %w", ErrSave, err))
	}

	e.logger.Debug("image saved",
		"file", name,
		"url", res.URL,
		"bytes", len(res.Data),
		"contentType", res.ContentType,
	)

	if e.inspect {
		e.noticeMetadata(name, res.Data)
	}

	return model.Succeeded(name)
}

// noticeMetadata logs identifying EXIF tags of a saved image.
func (e *Exporter) noticeMetadata(name string, data []byte) {
	tags := metadata.Scan(data)
	if len(tags) == 0 {
		return
	}
	e.logger.Info("saved image carries identifying metadata",
		"file", name,
		"categories", metadata.Categories(tags),
		"tags", metadata.Names(tags),
	)
}
