package resolve

import (
	"math"
	"sort"
	"strings"

	"github.com/nao1215/imgsweep/internal/model"
)

// ParseSrcSet splits a declared srcset string into candidates, in order.
//
// Entries are separated by commas. Each trimmed entry is split on its first
// space into a URL token and a size token that runs to the next space.
// Entries with an empty URL token (for example from a trailing comma) are
// dropped.
func ParseSrcSet(srcset string) []model.Candidate {
	entries := strings.Split(srcset, ",")
	candidates := make([]model.Candidate, 0, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		rawURL, rest, _ := strings.Cut(entry, " ")
		if rawURL == "" {
			continue
		}
		size, _, _ := strings.Cut(rest, " ")

		width, ok := parseWidth(size)
		if !ok {
			width = model.UnsizedWidth
		}
		candidates = append(candidates, model.Candidate{
			URL:   rawURL,
			Width: width,
			Sized: ok,
		})
	}

	return candidates
}

// parseWidth reads the optionally signed leading integer of a size token
// such as "300w", "2x" or "-5w". It reports false when no digit follows the
// optional sign. Values too large for an int saturate at model.UnsizedWidth,
// or math.MinInt when negative.
func parseWidth(token string) (int, bool) {
	negative := false
	if token != "" && (token[0] == '+' || token[0] == '-') {
		negative = token[0] == '-'
		token = token[1:]
	}

	width := 0
	digits := 0
	saturated := false
	for _, c := range token {
		if c < '0' || c > '9' {
			break
		}
		digits++
		d := int(c - '0')
		if saturated || width > (model.UnsizedWidth-d)/10 {
			width = model.UnsizedWidth
			saturated = true
			continue
		}
		width = width*10 + d
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		if saturated {
			return math.MinInt, true
		}
		return -width, true
	}
	return width, true
}

// Largest returns the candidate with the greatest width.
// Among equal widths the earliest candidate wins. It reports false when
// candidates is empty.
func Largest(candidates []model.Candidate) (model.Candidate, bool) {
	if len(candidates) == 0 {
		return model.Candidate{}, false
	}

	sorted := make([]model.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Width > sorted[j].Width
	})

	return sorted[0], true
}
