// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation computes windowed citation counts for experts and
// publications.
package citation

import "github.com/pdiddy/research-directory/pkg/types"

// AllTimeYear marks "no window": a cutoff at or below it selects the
// lifetime total instead of summing the per-year breakdown.
const AllTimeYear = 1999

// Record is any citation-bearing record.
type Record interface {
	LifetimeCitations() int
	YearlyCitations() types.CitationHistory
}

// Since returns the citations r accrued in cutoffYear or later. For
// cutoffYear <= AllTimeYear it returns the lifetime total.
func Since(r Record, cutoffYear int) int {
	if cutoffYear <= AllTimeYear {
		return r.LifetimeCitations()
	}
	return SumFrom(r.YearlyCitations(), cutoffYear)
}

// SumFrom sums the entries of h whose year is at or after cutoffYear.
func SumFrom(h types.CitationHistory, cutoffYear int) int {
	total := 0
	for _, yc := range h {
		if yc.Year >= cutoffYear {
			total += yc.Citations
		}
	}
	return total
}

// Accumulate adds every entry of src into dst, keyed by year, and returns
// dst. A nil dst is allocated.
func Accumulate(dst map[int]int, src types.CitationHistory) map[int]int {
	if dst == nil {
		dst = make(map[int]int, len(src))
	}
	for _, yc := range src {
		dst[yc.Year] += yc.Citations
	}
	return dst
}
