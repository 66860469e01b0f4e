package eventbus

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	errNoEvent    = errors.New("event does not exist")
	errNoCallback = errors.New("callback does not exist")
)

// Bus maps event names to ordered callback lists and shares State with them
type Bus struct {
	// State is passed to every callback. It may be read or replaced at any
	// time; the bus never inspects it.
	State State

	mu     sync.RWMutex
	events map[Name][]*Callback

	logger  *zap.Logger
	metrics Metrics
}

// New creates a bus. It fails with a *TypeError when an option is nil or
// carries a value of the wrong shape.
func New(opts ...Option) (*Bus, error) {
	o := &settings{}
	for _, opt := range opts {
		if opt == nil {
			return nil, errOptions
		}
		opt(o)
	}

	if err := o.validate(); err != nil {
		return nil, err
	}
	o.applyDefaults()

	b := &Bus{
		State:   o.state,
		events:  make(map[Name][]*Callback, len(o.events)),
		logger:  o.logger,
		metrics: o.metrics,
	}

	for name, cb := range o.events {
		b.events[name] = []*Callback{cb}
		b.metrics.SetListeners(name.String(), 1)
	}

	return b, nil
}

// MustNew is like New but panics on error
func MustNew(opts ...Option) *Bus {
	b, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// On appends cb to the callbacks of name and returns the bus.
//
// On panics with a *TypeError if name is nil or the zero Symbol, or if cb is
// nil or has no function. The same handle may be registered more than once;
// each registration is invoked separately.
func (b *Bus) On(name Name, cb *Callback) *Bus {
	if !validName(name) {
		panic(errEventName)
	}
	if !cb.valid() {
		panic(errCallback)
	}

	b.mu.Lock()
	b.events[name] = append(b.events[name], cb)
	count := len(b.events[name])
	b.mu.Unlock()

	b.metrics.SetListeners(name.String(), count)
	return b
}

// Emit invokes every callback registered for name, in registration order,
// with the bus state followed by args.
//
// The callback list is copied before dispatch, so On and Off calls made by a
// callback take effect on the next Emit. The first callback error stops the
// batch and is returned wrapped. Emitting a name with no callbacks logs a
// warning and returns nil.
func (b *Bus) Emit(name Name, args ...any) error {
	b.mu.RLock()
	callbacks := slices.Clone(b.events[name])
	b.mu.RUnlock()

	if len(callbacks) == 0 {
		b.diagnose("emit", fmt.Sprintf("emit => %q does not exist", nameString(name)), name)
		return nil
	}

	start := time.Now()
	for _, cb := range callbacks {
		if err := cb.fn(b.State, args...); err != nil {
			b.metrics.RecordEmit(name.String(), StatusError, time.Since(start))
			return fmt.Errorf("emit %q: %w", name.String(), err)
		}
	}
	b.metrics.RecordEmit(name.String(), StatusOK, time.Since(start))

	return nil
}

// Off removes the first registration of cb under name and returns the bus.
// A name left without callbacks is dropped from the registry.
//
// Unknown names and handles are logged, not reported. Off panics with a
// *TypeError if name is registered and cb is nil.
func (b *Bus) Off(name Name, cb *Callback) *Bus {
	remaining, err := b.remove(name, cb)
	switch {
	case errors.Is(err, errNoEvent):
		b.diagnose("off", fmt.Sprintf("off => %q does not exist", nameString(name)), name)
	case errors.Is(err, errNoCallback):
		b.diagnose("off", "off => this callback does not exist", name)
	default:
		b.metrics.SetListeners(name.String(), remaining)
	}
	return b
}

// Events returns the registered names ordered by their String form
func (b *Bus) Events() []Name {
	b.mu.RLock()
	names := make([]Name, 0, len(b.events))
	for name := range b.events {
		names = append(names, name)
	}
	b.mu.RUnlock()

	slices.SortStableFunc(names, func(a, c Name) int {
		return strings.Compare(a.String(), c.String())
	})
	return names
}

// Listeners returns how many registrations name currently has
func (b *Bus) Listeners(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.events[name])
}

// remove deletes one slot holding cb and reports how many are left
func (b *Bus) remove(name Name, cb *Callback) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	callbacks, ok := b.events[name]
	if !ok {
		return 0, errNoEvent
	}
	if !cb.valid() {
		panic(errCallback)
	}

	i := slices.Index(callbacks, cb)
	if i == -1 {
		return len(callbacks), errNoCallback
	}

	callbacks = slices.Delete(callbacks, i, i+1)
	if len(callbacks) == 0 {
		delete(b.events, name)
		return 0, nil
	}
	b.events[name] = callbacks

	return len(callbacks), nil
}

// diagnose reports a non-fatal condition
func (b *Bus) diagnose(op, msg string, name Name) {
	b.metrics.RecordDiagnostic(op)
	b.logger.Warn(msg,
		zap.String("op", op),
		zap.String("event", nameString(name)))
}
