package resolve

import "github.com/nao1215/imgsweep/internal/model"

// BestSource returns the URL that represents the highest resolution variant of
// the image. The result is empty only when the descriptor carries no usable
// source at all.
func BestSource(d model.ImageDescriptor) string {
	if d.HasSrcSet() {
		if best, ok := Largest(ParseSrcSet(d.SrcSet)); ok {
			return best.URL
		}
	}
	if d.CurrentSource != "" {
		return d.CurrentSource
	}
	return d.Source
}
