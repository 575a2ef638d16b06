// Package resolve picks the best source URL for an image.
//
// When an image declares alternate sources through srcset, the candidate with
// the largest width hint wins. Candidates whose size token is missing or not
// numeric are treated as infinitely wide, and ties keep declaration order.
// Images without a srcset fall back to the source the renderer selected, then
// to the declared src.
//
// Everything in this package is pure: no I/O and no logging.
package resolve
