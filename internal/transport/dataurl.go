package transport

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// defaultDataMediaType applies when a data: URL omits its media type (RFC 2397).
const defaultDataMediaType = "text/plain;charset=US-ASCII"

// hasDataScheme reports whether ref is a data: URL.
func hasDataScheme(ref string) bool {
	return len(ref) >= 5 && strings.EqualFold(ref[:5], "data:")
}

// decodeDataURL decodes an inline data: URL of the form
// data:[<mediatype>][;base64],<data>.
func decodeDataURL(ref string) (*Resource, error) {
	meta, payload, ok := strings.Cut(ref[5:], ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing comma", ErrInvalidDataURL)
	}

	mediaType := meta
	isBase64 := false
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		isBase64 = true
		mediaType = meta[:len(meta)-len(";base64")]
	}
	if mediaType == "" {
		mediaType = defaultDataMediaType
	}

	var data []byte
	if isBase64 {
		payload = strings.Join(strings.Fields(payload), "")
		var err error
		data, err = decodeBase64(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
		}
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
		}
		data = []byte(unescaped)
	}

	return &Resource{
		URL:         "data:" + mediaType,
		ContentType: mediaType,
		Data:        data,
	}, nil
}

// decodeBase64 accepts standard, unpadded and URL-safe alphabets.
func decodeBase64(s string) ([]byte, error) {
	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
