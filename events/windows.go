// Package events turns threshold crossings reported by an event detector
// into interval lists. A detector watches some quantity (elevation above a
// mask, sun below the horizon) and reports the instants where it crosses
// the threshold; this package does not know or care how those instants were
// found.
package events

import (
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/hoyle1974/window/interval"
)

var (
	ErrOutOfSearch  = errors.New("crossing outside the search interval")
	ErrInconsistent = errors.New("crossing direction inconsistent with detector state")
)

// Crossing marks one threshold transition. Rising means the watched
// quantity went above the threshold, opening a window; falling closes one.
type Crossing struct {
	Time   time.Time
	Rising bool
}

// Windows pairs detector crossings into the windows where the watched
// quantity was above its threshold, as a list valid over exactly the search
// interval.
//
// activeAtStart states whether the quantity was already above the threshold
// when the search began; with no crossings at all the result is therefore
// either the whole search interval or an empty list ("no events"). A window
// still open when the search ends is closed at the search end.
//
// Crossings must lie within the search interval and must alternate
// consistently with the detector state: a rising crossing while a window is
// open, or a falling one while none is, fails with ErrInconsistent.
func Windows(search interval.Interval, activeAtStart bool, crossings []Crossing) (interval.List, error) {
	sorted := make([]Crossing, len(crossings))
	copy(sorted, crossings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	var spans []interval.Interval
	active := activeAtStart
	start := search.Start()

	for _, c := range sorted {
		if !search.Contains(c.Time) {
			return interval.List{}, errors.Wrapf(ErrOutOfSearch,
				"crossing at %v, search %v", c.Time, search)
		}
		if c.Rising == active {
			return interval.List{}, errors.Wrapf(ErrInconsistent,
				"crossing at %v (rising=%t)", c.Time, c.Rising)
		}
		if c.Rising {
			start = c.Time
			active = true
			continue
		}
		span, err := interval.New(start, c.Time)
		if err != nil {
			return interval.List{}, err
		}
		spans = append(spans, span)
		active = false
	}

	if active {
		span, err := interval.New(start, search.End())
		if err != nil {
			return interval.List{}, err
		}
		spans = append(spans, span)
	}

	return interval.NewListWithin(search, spans)
}
