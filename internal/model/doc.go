// Package model defines the data structures shared by the imgsweep packages.
//
// This package contains the following main types:
//   - ImageDescriptor: One image element as enumerated from a document
//   - Document: The ordered image descriptors of one page plus its base URL
//   - Candidate: One entry of a declared srcset
//   - Outcome: The result of exporting a single image
//   - Result: The summary of a whole pipeline run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The page, resolve, export and pipeline packages all exchange
// these types, so centralizing them prevents import cycles.
package model
