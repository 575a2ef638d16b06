// Package transport turns URLs into raw bytes and a content type.
//
// The Client fetches http and https URLs with a plain GET. It sends no custom
// headers and no credentials. It also decodes inline data: URLs. When the
// document being exported is itself a local file, it reads file: URLs too.
// Relative references are resolved against a document base URL.
//
// # Proxies and Tor
//
// A Client can route all traffic through a SOCKS5 proxy. EmbeddedTor starts a
// private Tor daemon through tornago and exposes its SOCKS address, so pages on
// onion services can be exported without a system Tor installation:
//
//	tor := transport.NewEmbeddedTor()
//	if err := tor.Start(ctx); err != nil { ... }
//	defer tor.Stop()
//	client, err := transport.NewClient(transport.WithProxy(tor.SocksAddr()))
//
// # Limits
//
// By default there is no timeout and no body size limit. WithTimeout and
// WithMaxBodySize opt in to both.
package transport
