package page

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/imgsweep/internal/model"
)

// ParseManifest decodes a descriptor manifest.
//
// Two shapes are accepted, in YAML or JSON:
//
//	base: https://example.com/gallery/
//	images:
//	  - src: a.jpg
//	    srcset: a-640.jpg 640w, a-1280.jpg 1280w
//
// or a bare list of image descriptors. defaultBase is used when the
// manifest does not declare a base.
func ParseManifest(data []byte, defaultBase string) (*model.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	doc := &model.Document{Images: make([]model.ImageDescriptor, 0)}

	if len(root.Content) > 0 {
		node := root.Content[0]
		switch node.Kind {
		case yaml.MappingNode:
			if err := node.Decode(doc); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
			}
		case yaml.SequenceNode:
			if err := node.Decode(&doc.Images); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
			}
		default:
			return nil, ErrInvalidManifest
		}
	}

	if doc.Images == nil {
		doc.Images = make([]model.ImageDescriptor, 0)
	}
	if doc.BaseURL == "" {
		doc.BaseURL = defaultBase
	}

	return doc, nil
}
