package page

import "errors"

var (
	// ErrInvalidManifest is returned when a manifest is neither a document
	// mapping nor a list of image descriptors.
	ErrInvalidManifest = errors.New("invalid manifest: expected a mapping with images or a list of images")

	// ErrNoRenderer is returned when rendering is requested from a Loader
	// that was built without a Renderer.
	ErrNoRenderer = errors.New("rendering requested but no renderer configured")
)
