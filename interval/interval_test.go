package interval

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2020, 4, 10, 0, 0, 0, 0, time.UTC)

func at(sec int) time.Time {
	return base.Add(time.Duration(sec) * time.Second)
}

func iv(startSec, endSec int) Interval {
	return MustNew(at(startSec), at(endSec))
}

func TestNewRejectsInvertedRange(t *testing.T) {
	_, err := New(at(10), at(5))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidRange))
}

func TestNewDegenerate(t *testing.T) {
	degenerate, err := New(at(5), at(5))
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), degenerate.Duration())
	require.True(t, degenerate.Contains(at(5)))
}

func TestDuration(t *testing.T) {
	require.Equal(t, 10*time.Second, iv(0, 10).Duration())
}

func TestContains(t *testing.T) {
	a := iv(0, 10)

	require.True(t, a.Contains(at(0)))
	require.True(t, a.Contains(at(5)))
	require.True(t, a.Contains(at(10)))
	require.False(t, a.Contains(at(11)))
	require.False(t, a.Contains(at(-1)))
}

func TestEqualTolerance(t *testing.T) {
	a := iv(0, 10)
	jittered := MustNew(at(0).Add(3*time.Nanosecond), at(10).Add(-2*time.Nanosecond))
	offset := iv(0, 11)

	require.True(t, a.Equal(a))
	require.True(t, a.Equal(jittered))
	require.False(t, a.Equal(offset))

	require.False(t, a.EqualWithin(jittered, time.Nanosecond))
	require.True(t, a.EqualWithin(offset, 2*time.Second))
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"self", iv(0, 10), iv(0, 10), true},
		{"overlap", iv(0, 10), iv(5, 15), true},
		{"contained", iv(0, 10), iv(2, 8), true},
		{"touching", iv(0, 10), iv(10, 20), true},
		{"disjoint", iv(0, 10), iv(11, 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Intersects(tt.b))
			// symmetry
			require.Equal(t, tt.want, tt.b.Intersects(tt.a))
		})
	}
}

func TestIntersect(t *testing.T) {
	a := iv(0, 10)
	b := iv(5, 15)

	got, ok := a.Intersect(b)
	require.True(t, ok)
	require.True(t, got.Equal(iv(5, 10)))

	// commutative
	got2, ok := b.Intersect(a)
	require.True(t, ok)
	require.True(t, got.Equal(got2))

	// intersect with self is self
	self, ok := a.Intersect(a)
	require.True(t, ok)
	require.True(t, self.Equal(a))

	// the intersection always intersects both operands
	require.True(t, got.Intersects(a))
	require.True(t, got.Intersects(b))

	// touching intervals intersect at a single degenerate point
	point, ok := a.Intersect(iv(10, 20))
	require.True(t, ok)
	require.Equal(t, time.Duration(0), point.Duration())
	require.True(t, point.Equal(iv(10, 10)))

	_, ok = a.Intersect(iv(11, 20))
	require.False(t, ok)
}

func TestUnion(t *testing.T) {
	a := iv(0, 10)
	b := iv(5, 15)

	got, ok := a.Union(b)
	require.True(t, ok)
	require.True(t, got.Equal(iv(0, 15)))

	// commutative
	got2, ok := b.Union(a)
	require.True(t, ok)
	require.True(t, got.Equal(got2))

	// union with self is self
	self, ok := a.Union(a)
	require.True(t, ok)
	require.True(t, self.Equal(a))

	// touching intervals have a single-interval union
	touching, ok := a.Union(iv(10, 20))
	require.True(t, ok)
	require.True(t, touching.Equal(iv(0, 20)))

	// disjoint intervals do not: that takes a List
	_, ok = a.Union(iv(11, 20))
	require.False(t, ok)
}

func TestExpand(t *testing.T) {
	a := iv(10, 20)

	grown, err := a.Expand(5*time.Second, 3*time.Second)
	require.NoError(t, err)
	require.True(t, grown.Equal(iv(5, 23)))

	// negative deltas shrink the corresponding side
	shrunk, err := a.Expand(-2*time.Second, -2*time.Second)
	require.NoError(t, err)
	require.True(t, shrunk.Equal(iv(12, 18)))

	// expanding then expanding with negated deltas is the identity
	back, err := grown.Expand(-5*time.Second, -3*time.Second)
	require.NoError(t, err)
	require.True(t, back.Equal(a))

	// shrinking past the opposite end is an error
	_, err = a.Expand(-8*time.Second, -8*time.Second)
	require.True(t, errors.Is(err, ErrInvalidRange))
}

func TestString(t *testing.T) {
	got := iv(0, 10).String()
	require.Contains(t, got, at(0).String())
	require.Contains(t, got, at(10).String())
}
