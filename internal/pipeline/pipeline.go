package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nao1215/imgsweep/internal/model"
	"github.com/nao1215/imgsweep/internal/resolve"
)

// ErrAlreadyRun is returned when Run is called on a pipeline that has left
// the Idle state. A pipeline runs exactly once.
var ErrAlreadyRun = errors.New("pipeline has already run")

// State is the lifecycle state of a Pipeline.
type State int

const (
	// StateIdle is the state before Run is called.
	StateIdle State = iota

	// StateRunning is the state while descriptors are being processed.
	StateRunning

	// StateDone is the state after every descriptor has been visited.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Resolver chooses the URL to export for an image.
type Resolver interface {
	Resolve(d model.ImageDescriptor) string
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(d model.ImageDescriptor) string

// Resolve calls f(d).
func (f ResolverFunc) Resolve(d model.ImageDescriptor) string {
	return f(d)
}

// Exporter exports one resolved URL as the successIndex-th image.
// *export.Exporter satisfies it.
type Exporter interface {
	Export(ctx context.Context, url string, successIndex int) model.Outcome
}

// Pipeline exports the images of one document.
type Pipeline struct {
	// resolver picks each image's source.
	resolver Resolver

	// exporter fetches and saves one image.
	exporter Exporter

	// logger receives one Error record per failed image.
	logger *slog.Logger

	// output receives the final summary line.
	output io.Writer

	// state is the lifecycle state.
	state State
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for per-image failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithOutput sets where the summary line is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.output = w
	}
}

// WithResolver replaces the default source resolver (resolve.BestSource).
func WithResolver(r Resolver) Option {
	return func(p *Pipeline) {
		p.resolver = r
	}
}

// New creates an Idle pipeline around exporter.
func New(exporter Exporter, opts ...Option) *Pipeline {
	p := &Pipeline{
		resolver: ResolverFunc(resolve.BestSource),
		exporter: exporter,
		output:   os.Stdout,
		state:    StateIdle,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return p.state
}

// Run exports images in order and writes a one-line summary.
//
// Every descriptor is visited regardless of earlier failures. The returned
// Result counts successful exports. The only errors Run returns are
// ErrAlreadyRun and a failure to write the summary.
func (p *Pipeline) Run(ctx context.Context, images []model.ImageDescriptor) (model.Result, error) {
	if p.state != StateIdle {
		return model.Result{}, ErrAlreadyRun
	}
	p.state = StateRunning

	exported := 0
	for i, img := range images {
		src := p.resolver.Resolve(img)
		next := exported + 1

		p.logger.Debug("exporting image",
			"position", i+1,
			"url", displayURL(src),
		)

		outcome := p.exporter.Export(ctx, src, next)
		if !outcome.Success() {
			p.logger.Error("image export failed",
				"position", i+1,
				"url", displayURL(src),
				"error", outcome.Err(),
			)
			continue
		}
		exported = next
	}

	p.state = StateDone
	result := model.Result{Exported: exported}

	if _, err := fmt.Fprintf(p.output, "Downloaded %d images.\n", result.Exported); err != nil {
		return result, fmt.Errorf("failed to write summary: %w", err)
	}

	return result, nil
}

// maxDataURLDisplay caps how much of an inline data: URL is logged.
const maxDataURLDisplay = 48

// displayURL shortens inline data: URLs, which can be megabytes long.
func displayURL(u string) string {
	if len(u) > maxDataURLDisplay && strings.HasPrefix(strings.ToLower(u), "data:") {
		return u[:maxDataURLDisplay] + "..."
	}
	return u
}
