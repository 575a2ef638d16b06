package transport

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// Resource is a fetched URL.
type Resource struct {
	// URL is the absolute URL that was fetched.
	URL string

	// ContentType is the media type label reported for the bytes.
	// Empty when the server sent none.
	ContentType string

	// Data is the complete body.
	Data []byte
}

// Client fetches image and page resources.
//
// A Client is safe to reuse, but imgsweep only ever issues one request at a
// time.
type Client struct {
	// httpClient performs http and https requests.
	httpClient *http.Client

	// proxyAddress is the SOCKS5 proxy in "host:port" format, or empty.
	proxyAddress string

	// timeout bounds each HTTP request. Zero means no timeout.
	timeout time.Duration

	// maxBodySize limits the bytes read per resource. Zero means no limit.
	maxBodySize int64

	// base resolves relative references. May be nil.
	base *url.URL

	// localFiles permits file: URLs. Only set for documents loaded from disk.
	localFiles bool
}

// Option configures a Client.
type Option func(*Client)

// WithProxy routes all connections through the SOCKS5 proxy at address.
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithTimeout bounds every HTTP request, including reading the body.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithMaxBodySize rejects resources larger than size bytes.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithLocalFiles permits fetching file: URLs. Enable it only for documents
// read from the local filesystem.
func WithLocalFiles(enabled bool) Option {
	return func(c *Client) {
		c.localFiles = enabled
	}
}

// NewClient creates a Client with the given options.
//
// The proxy address is validated here, but no connection is made until the
// first fetch.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		transport = &http.Transport{}
	}
	transport = transport.Clone()

	if c.proxyAddress != "" {
		if !isValidProxyAddress(c.proxyAddress) {
			return nil, ErrInvalidProxyAddress
		}
		// Tor's SOCKS port needs no authentication.
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		// Never fall back to an environment HTTP proxy once SOCKS is configured.
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	c.httpClient = &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}

	return c, nil
}

// isValidProxyAddress checks that address is "host:port" with a port in 1-65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// WithBase returns a copy of the client that resolves relative references
// against base. The copy shares the underlying HTTP client.
func (c *Client) WithBase(base string) (*Client, error) {
	clone := *c
	clone.base = nil
	if base == "" {
		return &clone, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	clone.base = u
	return &clone, nil
}

// ProxyAddress returns the configured SOCKS5 proxy address, or "".
func (c *Client) ProxyAddress() string {
	return c.proxyAddress
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Fetch retrieves ref and returns its bytes and content type.
// ref may be relative to the client's base URL.
func (c *Client) Fetch(ctx context.Context, ref string) (*Resource, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrEmptyURL
	}

	// data: URLs are decoded before URL parsing because their payload need
	// not be a valid URL opaque part.
	if hasDataScheme(ref) {
		return decodeDataURL(ref)
	}

	target, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(target.Scheme) {
	case "http", "https":
		return c.fetchHTTP(ctx, target)
	case "file":
		if !c.localFiles {
			return nil, ErrFileSchemeNotAllowed
		}
		return c.readFile(target)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, target.Scheme)
	}
}

// resolve parses ref and resolves it against the base URL.
func (c *Client) resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", ref, err)
	}
	if c.base != nil {
		u = c.base.ResolveReference(u)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrRelativeURL, ref)
	}
	return u, nil
}

// fetchHTTP performs a GET request and reads the full body.
func (c *Client) fetchHTTP(ctx context.Context, target *url.URL) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{URL: target.String(), StatusCode: resp.StatusCode}
	}

	data, err := c.readBody(resp.Body, resp.ContentLength)
	if err != nil {
		return nil, err
	}

	return &Resource{
		URL:         target.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// readFile reads a local file referenced by a file: URL.
// The content type is derived from the file extension.
func (c *Client) readFile(target *url.URL) (*Resource, error) {
	path := filepath.FromSlash(target.Path)
	f, err := os.Open(path) //nolint:gosec // Path comes from a local document the user chose
	if err != nil {
		return nil, err
	}
	defer f.Close()

	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	data, err := c.readBody(f, size)
	if err != nil {
		return nil, err
	}

	return &Resource{
		URL:         target.String(),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Data:        data,
	}, nil
}

// readBody reads r completely, enforcing maxBodySize when set.
// declared is the advertised length, or -1 if unknown.
func (c *Client) readBody(r io.Reader, declared int64) ([]byte, error) {
	if c.maxBodySize <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return data, nil
	}

	if declared > c.maxBodySize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrBodyTooLarge, declared, c.maxBodySize)
	}

	data, err := io.ReadAll(io.LimitReader(r, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBodySize)
	}
	return data, nil
}
