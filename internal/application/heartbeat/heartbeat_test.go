package heartbeat

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aescanero/statebus/pkg/eventbus"
)

func newBus(t *testing.T) *eventbus.Bus {
	t.Helper()

	bus, err := eventbus.New(eventbus.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return bus
}

func TestNew_Validation(t *testing.T) {
	_, err := New(&Config{Interval: time.Second})
	assert.Error(t, err)

	_, err = New(&Config{Bus: newBus(t)})
	assert.ErrorContains(t, err, "invalid heartbeat interval")
}

func TestHeartbeat_EmitsPeriodically(t *testing.T) {
	bus := newBus(t)
	tick := eventbus.Key("tick")

	var beats atomic.Int64
	bus.On(tick, eventbus.NewCallback(func(_ eventbus.State, args ...any) error {
		if _, ok := args[0].(time.Time); ok {
			beats.Add(1)
		}
		return nil
	}))

	h, err := New(&Config{Bus: bus, Event: tick, Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	h.Start()
	h.Start()
	assert.Eventually(t, func() bool { return beats.Load() >= 2 }, time.Second, time.Millisecond)

	h.Stop()
	h.Stop()
	stopped := beats.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, beats.Load())
}

func TestHeartbeat_BeatUpdatesState(t *testing.T) {
	bus := newBus(t)
	tick := eventbus.Key("tick")
	ticks := eventbus.Key("ticks")
	bus.State[ticks] = 0
	bus.On(tick, eventbus.NewCallback(func(s eventbus.State, _ ...any) error {
		s[ticks] = s[ticks].(int) + 1
		return nil
	}))

	h, err := New(&Config{Bus: bus, Event: tick, Interval: time.Hour})
	require.NoError(t, err)

	require.NoError(t, h.Beat(time.Now()))
	require.NoError(t, h.Beat(time.Now()))
	assert.Equal(t, 2, bus.State[ticks])
}

func TestHeartbeat_LogsEmitErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := newBus(t)
	tick := eventbus.NewSymbol("tick")
	bus.On(tick, eventbus.NewCallback(func(eventbus.State, ...any) error {
		return errors.New("boom")
	}))

	h, err := New(&Config{Bus: bus, Event: tick, Interval: 5 * time.Millisecond, Logger: zap.New(core)})
	require.NoError(t, err)

	h.Start()
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("heartbeat emit failed").Len() > 0
	}, time.Second, time.Millisecond)
	h.Stop()
}
