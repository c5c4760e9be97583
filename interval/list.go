package interval

import (
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrIndexOutOfRange = errors.New("interval index out of range")
	ErrEmptyList       = errors.New("cannot derive validity from an empty interval list")
	ErrOutOfValidity   = errors.New("interval lies outside the validity bound")
)

// List is an ordered collection of non-overlapping, non-touching intervals
// together with a validity interval bounding them. The validity marks where
// the list is authoritative: an empty list valid over [a, b] means "nothing
// happened between a and b", which is a meaningful result, not an error.
//
// Lists are immutable. Union, Intersection and Invert return new values, so
// concurrent readers may share a List freely.
type List struct {
	intervals []Interval
	validity  Interval
}

// NewList builds a list from possibly unsorted, possibly overlapping
// intervals. Overlapping or touching inputs are merged. The validity spans
// from the earliest start to the latest end of the merged members.
//
// An empty input has no span to derive a validity from and fails with
// ErrEmptyList; use NewListWithin to state the validity explicitly.
func NewList(intervals []Interval) (List, error) {
	if len(intervals) == 0 {
		return List{}, ErrEmptyList
	}
	merged := mergeSweep(intervals)
	validity := Interval{
		start: merged[0].start,
		end:   merged[len(merged)-1].end,
	}
	return List{intervals: merged, validity: validity}, nil
}

// NewListWithin builds a list bounded by an explicit validity. Members are
// clipped to the validity; members entirely outside it are dropped, as are
// degenerate fragments left over from clipping. An empty input yields an
// empty list valid over the given bound.
func NewListWithin(validity Interval, intervals []Interval) (List, error) {
	merged := mergeSweep(intervals)
	return List{
		intervals: clipTo(validity, merged),
		validity:  validity,
	}, nil
}

// NewListStrict is NewListWithin with a reject policy: any input interval
// not fully contained in the validity fails with ErrOutOfValidity.
func NewListStrict(validity Interval, intervals []Interval) (List, error) {
	for _, iv := range intervals {
		if !validity.Contains(iv.start) || !validity.Contains(iv.end) {
			return List{}, errors.Wrapf(ErrOutOfValidity,
				"%v not within %v", iv, validity)
		}
	}
	return List{intervals: mergeSweep(intervals), validity: validity}, nil
}

// Len returns the number of member intervals.
func (l List) Len() int { return len(l.intervals) }

// At returns the member interval at the given index.
func (l List) At(i int) (Interval, error) {
	if i < 0 || i >= len(l.intervals) {
		return Interval{}, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, len(l.intervals))
	}
	return l.intervals[i], nil
}

// Validity returns the interval over which this list is authoritative.
func (l List) Validity() Interval { return l.validity }

// Spans returns a copy of the member intervals.
func (l List) Spans() []Interval {
	out := make([]Interval, len(l.intervals))
	copy(out, l.intervals)
	return out
}

// IsZero reports whether the list is the zero value: no members and a zero
// validity. Union and Intersection return it when the operand validities do
// not overlap at all.
func (l List) IsZero() bool {
	return len(l.intervals) == 0 && l.validity.IsZero()
}

// Contains reports whether t falls inside any member interval. Instants
// outside the validity are never contained.
func (l List) Contains(t time.Time) bool {
	if !l.validity.Contains(t) {
		return false
	}
	for _, iv := range l.intervals {
		if iv.Contains(t) {
			return true
		}
	}
	return false
}

// Intersects reports whether any member interval intersects iv.
func (l List) Intersects(iv Interval) bool {
	for _, member := range l.intervals {
		if member.Intersects(iv) {
			return true
		}
	}
	return false
}

// Intersect returns the non-degenerate overlap of iv with the member it
// intersects, or false when no member overlaps it by more than the
// tolerance. Members are disjoint, so at most one such overlap exists.
func (l List) Intersect(iv Interval) (Interval, bool) {
	for _, member := range l.intervals {
		if overlap, ok := member.Intersect(iv); ok && overlap.Duration() > Tolerance {
			return overlap, true
		}
	}
	return Interval{}, false
}

// Union combines two lists. The result is valid only where both operands
// were authoritative, so its validity is the intersection of the two
// validities; members from both lists are merged and clipped to it. If the
// validities do not overlap the zero List is returned.
func (l List) Union(o List) List {
	validity, ok := l.validity.Intersect(o.validity)
	if !ok {
		return List{}
	}
	all := make([]Interval, 0, len(l.intervals)+len(o.intervals))
	all = append(all, l.intervals...)
	all = append(all, o.intervals...)
	return List{
		intervals: clipTo(validity, mergeSweep(all)),
		validity:  validity,
	}
}

// Intersection returns the overlap of two lists: every pairwise overlap of
// one member from each list, within the intersection of the two validities.
// If the validities do not overlap the zero List is returned.
func (l List) Intersection(o List) List {
	validity, ok := l.validity.Intersect(o.validity)
	if !ok {
		return List{}
	}

	// Both member sequences are sorted and disjoint, so a two-pointer sweep
	// visits every intersecting pair once. Degenerate fragments from merely
	// touching members are dropped.
	var fragments []Interval
	a, b := l.intervals, o.intervals
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if overlap, ok := a[i].Intersect(b[j]); ok && overlap.Duration() > Tolerance {
			fragments = append(fragments, overlap)
		}
		if a[i].end.Before(b[j].end) {
			i++
		} else {
			j++
		}
	}

	return List{
		intervals: clipTo(validity, mergeSweep(fragments)),
		validity:  validity,
	}
}

// Invert returns the complement of the member intervals within the
// validity: the gaps. A list with no members inverts to its whole validity;
// a list covering its validity exactly inverts to an empty list. Degenerate
// gaps, including those at the validity edges, are omitted.
func (l List) Invert() List {
	var gaps []Interval
	cursor := l.validity.start
	for _, iv := range l.intervals {
		if iv.start.Sub(cursor) > Tolerance {
			gaps = append(gaps, Interval{start: cursor, end: iv.start})
		}
		cursor = iv.end
	}
	if l.validity.end.Sub(cursor) > Tolerance {
		gaps = append(gaps, Interval{start: cursor, end: l.validity.end})
	}
	return List{intervals: gaps, validity: l.validity}
}

func (l List) String() string {
	if len(l.intervals) == 0 {
		return "no intervals within " + l.validity.String()
	}
	var sb strings.Builder
	for _, iv := range l.intervals {
		sb.WriteString(iv.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// mergeSweep sorts a copy of the input by start and collapses overlapping
// or touching intervals into their minimal covering set. Starts closer than
// Tolerance to the running end still merge, absorbing root-finding jitter.
func mergeSweep(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if next.start.Sub(last.end) <= Tolerance {
			if next.end.After(last.end) {
				last.end = next.end
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// clipTo intersects every interval with the validity bound, dropping those
// entirely outside it and degenerate fragments produced by the clipping.
// Members that were degenerate to begin with survive if they lie inside.
func clipTo(validity Interval, intervals []Interval) []Interval {
	var clipped []Interval
	for _, iv := range intervals {
		overlap, ok := iv.Intersect(validity)
		if !ok {
			continue
		}
		if overlap.Duration() == 0 && iv.Duration() > 0 {
			continue
		}
		clipped = append(clipped, overlap)
	}
	return clipped
}
