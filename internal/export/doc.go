// Package export fetches one resolved image URL and saves its bytes.
//
// The Exporter is deliberately narrow: one URL in, one Outcome out. It never
// logs failures itself and never keeps a counter. The pipeline supplies the
// success index and records the result, so the index only ever advances after
// a save has completed.
package export
