package prometheus

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aescanero/statebus/pkg/eventbus"
)

func newBus(t *testing.T) (*eventbus.Bus, *Collector) {
	t.Helper()

	collector := NewCollector(prometheus.NewRegistry())
	bus, err := eventbus.New(
		eventbus.WithLogger(zap.NewNop()),
		eventbus.WithMetrics(collector),
	)
	require.NoError(t, err)

	return bus, collector
}

func TestCollector_Emits(t *testing.T) {
	bus, c := newBus(t)
	k := eventbus.Key("tick")
	boom := errors.New("boom")

	ok := eventbus.NewCallback(func(eventbus.State, ...any) error { return nil })
	bus.On(k, ok)
	require.NoError(t, bus.Emit(k))
	require.NoError(t, bus.Emit(k))

	failing := eventbus.NewCallback(func(eventbus.State, ...any) error { return boom })
	bus.On(k, failing)
	require.ErrorIs(t, bus.Emit(k), boom)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.emits.WithLabelValues("tick", eventbus.StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.emits.WithLabelValues("tick", eventbus.StatusError)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.emitTime))
}

func TestCollector_Listeners(t *testing.T) {
	bus, c := newBus(t)
	k := eventbus.Key("tick")
	cb := eventbus.NewCallback(func(eventbus.State, ...any) error { return nil })

	bus.On(k, cb).On(k, cb)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.listeners.WithLabelValues("tick")))

	bus.Off(k, cb).Off(k, cb)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.listeners.WithLabelValues("tick")))
}

func TestCollector_Diagnostics(t *testing.T) {
	bus, c := newBus(t)
	cb := eventbus.NewCallback(func(eventbus.State, ...any) error { return nil })

	_ = bus.Emit(eventbus.Key("missing"))
	bus.Off(eventbus.Key("missing"), cb)
	bus.Off(eventbus.Key("missing"), cb)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.diagnostics.WithLabelValues("emit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.diagnostics.WithLabelValues("off")))
}
