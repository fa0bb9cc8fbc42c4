package busy

import (
	"sort"
	"time"
)

// Source tags which calendar produced a busy interval: the owner's local
// events or a synced integration (identified by its id).
type Source string

// SourceLocal marks intervals coming from the owner's own events.
const SourceLocal Source = "local"

// Interval is a half-open busy span [Start, End) in UTC.
type Interval struct {
	Start  time.Time
	End    time.Time
	Source Source
}

// Overlaps reports whether [start, end) intersects the interval.
// Half-open semantics: touching endpoints do not overlap.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && iv.Start.Before(end)
}

// Overlaps reports whether [start, end) intersects any interval in set.
func Overlaps(set []Interval, start, end time.Time) bool {
	for _, iv := range set {
		if iv.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// Clip keeps the portions of intervals that intersect [from, to), trimming
// spans that cross the boundary. Zero-length results are dropped.
func Clip(set []Interval, from, to time.Time) []Interval {
	var out []Interval
	for _, iv := range set {
		if !iv.Overlaps(from, to) {
			continue
		}
		start := iv.Start
		end := iv.End
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		if start.Before(end) {
			out = append(out, Interval{Start: start, End: end, Source: iv.Source})
		}
	}
	return out
}

// Merge sorts intervals by start and coalesces overlapping and adjacent ones
// into a minimal non-overlapping set. Adjacency counts as overlap: two spans
// meeting at a point become one. A merged span keeps the source of its
// earliest member. The input slice is not modified.
func Merge(set []Interval) []Interval {
	if len(set) == 0 {
		return nil
	}

	sorted := make([]Interval, len(set))
	copy(sorted, set)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Pad expands every interval symmetrically by buffer on both sides, clamping
// to [floor, ceil] so padding never escapes the working window, then merges
// the result.
func Pad(set []Interval, buffer time.Duration, floor, ceil time.Time) []Interval {
	if buffer <= 0 {
		return Merge(set)
	}
	padded := make([]Interval, 0, len(set))
	for _, iv := range set {
		start := iv.Start.Add(-buffer)
		end := iv.End.Add(buffer)
		if start.Before(floor) {
			start = floor
		}
		if end.After(ceil) {
			end = ceil
		}
		if start.Before(end) {
			padded = append(padded, Interval{Start: start, End: end, Source: iv.Source})
		}
	}
	return Merge(padded)
}
