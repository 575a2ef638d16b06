package model

import "math"

// UnsizedWidth is the effective width of a srcset candidate whose size token
// is missing or does not start with a number. It compares greater than any
// explicit width, so such a candidate wins selection.
//
// This is a compatibility quirk of naive size parsing rather than a
// preference for unlabeled images.
const UnsizedWidth = math.MaxInt

// ImageDescriptor describes one image element of a rendered document.
// Values are read-only once enumerated.
type ImageDescriptor struct {
	// Source is the primary declared source (the src attribute).
	Source string `json:"src" yaml:"src"`

	// CurrentSource is the URL the rendering environment selected for display.
	// Empty when the document was not rendered or the image never loaded.
	CurrentSource string `json:"currentSrc,omitempty" yaml:"currentSrc,omitempty"`

	// SrcSet is the raw declared alternate-sources string (the srcset attribute).
	SrcSet string `json:"srcset,omitempty" yaml:"srcset,omitempty"`
}

// HasSrcSet reports whether the descriptor declares alternate sources.
func (d ImageDescriptor) HasSrcSet() bool {
	return d.SrcSet != ""
}

// Candidate is one declared alternate image source.
type Candidate struct {
	// URL is the candidate URL token, exactly as declared.
	URL string

	// Width is the parsed width hint, or UnsizedWidth when Sized is false.
	Width int

	// Sized reports whether the size token carried a usable number.
	Sized bool
}

// Document is the enumerated image content of a single page.
type Document struct {
	// BaseURL is used to resolve relative image references.
	// It honours <base href> when the page declares one.
	BaseURL string `json:"base,omitempty" yaml:"base,omitempty"`

	// Images are the image descriptors in document order.
	Images []ImageDescriptor `json:"images" yaml:"images"`
}

// Len returns the number of images in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Images)
}
