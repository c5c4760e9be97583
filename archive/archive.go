// Package archive persists computed window sets under a name, so a
// downstream consumer can pick up "station-X/passes" or "station-X/night"
// without redoing the analysis. Records are small gob-encoded snapshots;
// the layout is an internal convenience, not a stable format.
package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/patrickmn/go-cache"

	"github.com/hoyle1974/window/interval"
	"github.com/hoyle1974/window/misc"
	"github.com/hoyle1974/window/storage"
	"github.com/hoyle1974/window/telemetry"
)

const keyPrefix = "windows/"
const keySuffix = ".gob"

var ErrNotFound = errors.New("no window set stored under that name")

// record is the stored shape of an interval.List. Reconstruction goes back
// through interval.NewListWithin, so a corrupted record cannot produce a
// list that violates the algebra's invariants.
type record struct {
	ValidStart time.Time
	ValidEnd   time.Time
	Spans      [][2]time.Time
}

type Archive struct {
	store   storage.System
	cache   *cache.Cache
	log     telemetry.Logger
	metrics telemetry.Metrics
}

// New creates an archive over the given storage backend with no telemetry.
func New(store storage.System) *Archive {
	return NewWithTelemetry(store, telemetry.NOPLogger{}, telemetry.NOPMetrics{})
}

// NewWithTelemetry creates an archive that reports loads, saves and cache
// hits through the given logger and metrics.
func NewWithTelemetry(store storage.System, log telemetry.Logger, metrics telemetry.Metrics) *Archive {
	return &Archive{
		store:   store,
		cache:   cache.New(5*time.Minute, time.Hour),
		log:     log,
		metrics: metrics,
	}
}

// Save stores the list under the given name, replacing any previous set.
func (a *Archive) Save(ctx context.Context, name string, l interval.List) error {
	rec := record{
		ValidStart: l.Validity().Start(),
		ValidEnd:   l.Validity().End(),
	}
	for _, span := range l.Spans() {
		rec.Spans = append(rec.Spans, [2]time.Time{span.Start(), span.End()})
	}

	b, err := misc.EncodeToBytes(rec)
	if err != nil {
		return errors.Wrapf(err, "encoding window set %q", name)
	}

	if err := a.store.Write(ctx, keyFor(name), b); err != nil {
		a.log.Error(fmt.Sprintf("saving window set %q", name), err)
		return err
	}

	a.cache.Set(name, l, cache.DefaultExpiration)
	a.metrics.CountAdd("archive.saves", 1)
	a.log.Debug(fmt.Sprintf("saved window set %q (%d windows)", name, l.Len()))
	return nil
}

// Load returns the list stored under the given name, or ErrNotFound.
func (a *Archive) Load(ctx context.Context, name string) (interval.List, error) {
	if cached, ok := a.cache.Get(name); ok {
		a.metrics.CountAdd("archive.cache_hits", 1)
		return cached.(interval.List), nil
	}

	b, err := a.store.Read(ctx, keyFor(name))
	if err != nil {
		if errors.Is(err, storage.ErrDoesNotExist) {
			return interval.List{}, errors.Wrapf(ErrNotFound, "%q", name)
		}
		return interval.List{}, err
	}

	var rec record
	if err := misc.DecodeFromBytes(b, &rec); err != nil {
		return interval.List{}, errors.Wrapf(err, "decoding window set %q", name)
	}

	validity, err := interval.New(rec.ValidStart, rec.ValidEnd)
	if err != nil {
		return interval.List{}, errors.Wrapf(err, "window set %q validity", name)
	}
	spans := make([]interval.Interval, 0, len(rec.Spans))
	for _, s := range rec.Spans {
		span, err := interval.New(s[0], s[1])
		if err != nil {
			return interval.List{}, errors.Wrapf(err, "window set %q span", name)
		}
		spans = append(spans, span)
	}

	l, err := interval.NewListWithin(validity, spans)
	if err != nil {
		return interval.List{}, err
	}

	a.cache.Set(name, l, cache.DefaultExpiration)
	a.metrics.CountAdd("archive.loads", 1)
	return l, nil
}

// Names lists the stored window set names.
func (a *Archive) Names(ctx context.Context) ([]string, error) {
	keys, err := a.store.GetKeysWithPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name := strings.TrimPrefix(k, keyPrefix)
		name = strings.TrimSuffix(name, keySuffix)
		names = append(names, name)
	}
	return names, nil
}

// Delete removes the stored set and drops it from the cache.
func (a *Archive) Delete(ctx context.Context, name string) error {
	a.cache.Delete(name)
	return a.store.Delete(ctx, keyFor(name))
}

func keyFor(name string) string {
	return keyPrefix + name + keySuffix
}
