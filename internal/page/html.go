package page

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/nao1215/imgsweep/internal/model"
)

// Parser enumerates <img> elements of a static HTML page.
type Parser struct {
	// documentURL is where the page was loaded from. It is the base URL
	// unless the page declares <base href>.
	documentURL *url.URL

	// charset, when set, overrides encoding detection.
	charset string
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithCharset forces the page to be decoded with the named encoding
// (a WHATWG label such as "shift_jis" or "windows-1252").
func WithCharset(name string) ParserOption {
	return func(p *Parser) {
		p.charset = name
	}
}

// NewParser creates a parser for a page loaded from documentURL.
func NewParser(documentURL string, opts ...ParserOption) (*Parser, error) {
	u, err := url.Parse(documentURL)
	if err != nil {
		return nil, fmt.Errorf("invalid document URL %q: %w", documentURL, err)
	}

	p := &Parser{documentURL: u}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse reads HTML from r and returns its images in document order.
// contentType is the Content-Type the page was served with, used for
// charset detection. It may be empty.
//
// Each descriptor carries what a browser would report without layout:
// src resolved to an absolute URL, srcset verbatim, and no currentSrc.
func (p *Parser) Parse(r io.Reader, contentType string) (*model.Document, error) {
	decoded, err := p.decode(r, contentType)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base := p.baseURL(doc)
	result := &model.Document{
		BaseURL: base.String(),
		Images:  make([]model.ImageDescriptor, 0),
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		srcset, _ := s.Attr("srcset")
		result.Images = append(result.Images, model.ImageDescriptor{
			Source: resolveAgainst(base, src),
			SrcSet: strings.TrimSpace(srcset),
		})
	})

	return result, nil
}

// decode wraps r so that it yields UTF-8.
func (p *Parser) decode(r io.Reader, contentType string) (io.Reader, error) {
	if p.charset != "" {
		enc, err := htmlindex.Get(p.charset)
		if err != nil {
			return nil, fmt.Errorf("unknown charset %q: %w", p.charset, err)
		}
		return enc.NewDecoder().Reader(r), nil
	}

	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to detect page charset: %w", err)
	}
	return decoded, nil
}

// baseURL returns the document URL adjusted by the first <base href>.
func (p *Parser) baseURL(doc *goquery.Document) *url.URL {
	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return p.documentURL
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return p.documentURL
	}
	return declaredBase(p.documentURL, p.documentURL.ResolveReference(ref))
}

// declaredBase returns base unless it would move a remote document onto the
// local filesystem, in which case the document URL is kept.
func declaredBase(documentURL, base *url.URL) *url.URL {
	if isFileURL(base) && !isFileURL(documentURL) {
		return documentURL
	}
	return base
}

func isFileURL(u *url.URL) bool {
	return u != nil && strings.EqualFold(u.Scheme, "file")
}

// resolveAgainst returns ref as an absolute URL. An empty or unparseable
// ref is returned trimmed and unresolved.
func resolveAgainst(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(ref), "data:") {
		return ref
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
