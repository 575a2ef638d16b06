// Package pipeline runs the sequential export of a document's images.
//
// A Pipeline moves through three states: Idle, Running and Done. While
// running it visits every image descriptor in document order. For each one
// it resolves the best source and asks the exporter to save it as the next
// numbered image. Each image is fully fetched and saved (or failed) before
// the next one is resolved.
//
// Design decision: failures are isolated per image. A failed export is logged
// once at Error level and the pipeline moves on. Nothing aborts a run, and the
// success counter only advances after a save completes, so saved filenames are
// numbered without gaps.
//
// Concurrency is intentionally absent. No two exports overlap, and the success
// counter is a local variable of Run rather than shared state.
package pipeline
