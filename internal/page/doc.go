// Package page enumerates the images of a document.
//
// A document is turned into a model.Document, the ordered image descriptors
// plus the base URL relative references resolve against. There are three
// enumeration paths:
//
//   - Static HTML, from a URL or a local file, parsed with goquery. The
//     base URL honours <base href> and the charset is detected from the
//     Content-Type header, a <meta> declaration or a byte order mark.
//   - Rendered pages, loaded in headless Chromium with go-rod and read from
//     document.images after scripts have run. Only this path can observe
//     currentSrc.
//   - Descriptor manifests in YAML or JSON, for documents captured
//     elsewhere.
//
// Loader picks the path from the source and options.
package page
