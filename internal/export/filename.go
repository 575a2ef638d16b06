package export

import (
	"mime"
	"strconv"
	"strings"
)

// DefaultExtension is used when the content type is absent or malformed.
const DefaultExtension = "jpg"

// Extension returns the lowercase subtype of contentType, or
// DefaultExtension when none can be extracted.
// For example "image/png" yields "png" and "image/svg+xml" yields "svg+xml".
func Extension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return DefaultExtension
	}
	_, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || subtype == "" {
		return DefaultExtension
	}
	return strings.ToLower(subtype)
}

// Filename names the successIndex-th exported image.
func Filename(contentType string, successIndex int) string {
	return "image_" + strconv.Itoa(successIndex) + "." + Extension(contentType)
}
