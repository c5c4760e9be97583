package telemetry

// This package is how the library reports metrics. By default they are
// no-ops, but a user can provide an implementation if they want the counts
// to go somewhere.

type Metrics interface {
	CountAdd(key string, delta int64)
	SetGauge(key string, value float64)
}

type NOPMetrics struct {
}

func (n NOPMetrics) CountAdd(key string, delta int64) {
}
func (n NOPMetrics) SetGauge(key string, value float64) {
}
