package interval

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// Tolerance is the default separation under which two instants are treated
// as equal. Upstream event detection is numerically approximate, so exact
// time.Time equality is too strict for endpoints produced by root finding.
const Tolerance = 10 * time.Nanosecond

var ErrInvalidRange = errors.New("interval end is before start")

// Interval is a closed time range [start, end] with end >= start.
// A degenerate interval (start == end) is allowed and marks an exact
// threshold crossing. Intervals are immutable values; every transformation
// returns a new Interval.
type Interval struct {
	start time.Time
	end   time.Time
}

// New constructs an interval, rejecting end < start with ErrInvalidRange.
func New(start, end time.Time) (Interval, error) {
	if end.Before(start) {
		return Interval{}, errors.Wrapf(ErrInvalidRange, "start %v, end %v", start, end)
	}
	return Interval{start: start, end: end}, nil
}

// MustNew is New for inputs known to be ordered, such as test fixtures.
func MustNew(start, end time.Time) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

func (i Interval) Start() time.Time { return i.start }

func (i Interval) End() time.Time { return i.end }

// Duration is end - start, never negative.
func (i Interval) Duration() time.Duration {
	return i.end.Sub(i.start)
}

// IsZero reports whether the interval is the zero value.
func (i Interval) IsZero() bool {
	return i.start.IsZero() && i.end.IsZero()
}

// Contains reports whether t lies within the closed range.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.start) && !t.After(i.end)
}

// Equal compares both endpoints with the default Tolerance.
func (i Interval) Equal(o Interval) bool {
	return i.EqualWithin(o, Tolerance)
}

// EqualWithin compares both endpoints, treating instants closer than tol
// as equal.
func (i Interval) EqualWithin(o Interval, tol time.Duration) bool {
	return within(i.start, o.start, tol) && within(i.end, o.end, tol)
}

// Intersects reports whether the two closed ranges share at least one
// point. Touching endpoints count as an intersection.
func (i Interval) Intersects(o Interval) bool {
	return !i.start.After(o.end) && !o.start.After(i.end)
}

// Intersect returns the overlap of the two intervals. The second return
// value is false when the intervals are disjoint. A touching pair yields a
// degenerate interval at the shared point.
func (i Interval) Intersect(o Interval) (Interval, bool) {
	if !i.Intersects(o) {
		return Interval{}, false
	}
	start := laterOf(i.start, o.start)
	end := earlierOf(i.end, o.end)
	if end.Before(start) {
		end = start
	}
	return Interval{start: start, end: end}, true
}

// Union returns the single covering interval when the operands intersect or
// touch. Disjoint operands have no single-interval union; combining them
// takes a List.
func (i Interval) Union(o Interval) (Interval, bool) {
	if !i.Intersects(o) {
		return Interval{}, false
	}
	return Interval{
		start: earlierOf(i.start, o.start),
		end:   laterOf(i.end, o.end),
	}, true
}

// Expand moves the start earlier by startDelta and the end later by
// endDelta. Negative deltas shrink the corresponding side. Shrinking past
// the opposite endpoint fails with ErrInvalidRange.
func (i Interval) Expand(startDelta, endDelta time.Duration) (Interval, error) {
	start := i.start.Add(-startDelta)
	end := i.end.Add(endDelta)
	if end.Before(start) {
		return Interval{}, errors.Wrapf(ErrInvalidRange,
			"expand by (%v, %v) inverts [%v  %v]", startDelta, endDelta, i.start, i.end)
	}
	return Interval{start: start, end: end}, nil
}

func (i Interval) String() string {
	return fmt.Sprintf("[%v  %v]", i.start, i.end)
}

func within(a, b time.Time, tol time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
