package geo

import "sort"

// Interval is a half-open range [Start, End) on one axis.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Span returns a new interval from start with the given length.
func Span(start, length float64) Interval {
	return Interval{Start: start, End: start + length}
}

// Length returns End - Start.
func (iv Interval) Length() float64 {
	return iv.End - iv.Start
}

// Overlaps reports whether the two intervals share a non-empty range.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

// Within reports whether iv lies inside bounds.
func (iv Interval) Within(bounds Interval) bool {
	return iv.Start >= bounds.Start && iv.End <= bounds.End
}

// Shift returns the interval moved by d.
func (iv Interval) Shift(d float64) Interval {
	return Interval{iv.Start + d, iv.End + d}
}

// MergeIntervals sorts the intervals by start and merges overlapping or
// touching ones. The input slice is not modified.
func MergeIntervals(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Gaps returns the free ranges of bounds not covered by blocked, in
// left-to-right order: before the first block, between blocks, after the
// last block. Blocked ranges are clipped to bounds.
func Gaps(bounds Interval, blocked []Interval) []Interval {
	var clipped []Interval
	for _, b := range blocked {
		if b.End <= bounds.Start || b.Start >= bounds.End {
			continue
		}
		if b.Start < bounds.Start {
			b.Start = bounds.Start
		}
		if b.End > bounds.End {
			b.End = bounds.End
		}
		clipped = append(clipped, b)
	}

	var gaps []Interval
	cursor := bounds.Start
	for _, b := range MergeIntervals(clipped) {
		if b.Start > cursor {
			gaps = append(gaps, Interval{cursor, b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < bounds.End {
		gaps = append(gaps, Interval{cursor, bounds.End})
	}
	return gaps
}

// FirstFit returns the start of the first gap in bounds that can hold a
// range of the given length.
func FirstFit(bounds Interval, blocked []Interval, length float64) (float64, bool) {
	for _, g := range Gaps(bounds, blocked) {
		if g.Length() >= length {
			return g.Start, true
		}
	}
	return 0, false
}

// AnyOverlap reports whether iv overlaps any of the given intervals.
func AnyOverlap(iv Interval, others []Interval) bool {
	for _, o := range others {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}
