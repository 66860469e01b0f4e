package heartbeat

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aescanero/statebus/pkg/eventbus"
)

// Config holds heartbeat configuration
type Config struct {
	Bus      *eventbus.Bus
	Event    eventbus.Name
	Interval time.Duration
	// StateLock is held around each emit. Share it with every other reader
	// of the bus state.
	StateLock sync.Locker
	Logger    *zap.Logger
}

// Heartbeat periodically emits an event on a bus
type Heartbeat struct {
	bus      *eventbus.Bus
	event    eventbus.Name
	interval time.Duration
	lock     sync.Locker
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a new heartbeat
func New(cfg *Config) (*Heartbeat, error) {
	if cfg.Bus == nil {
		return nil, fmt.Errorf("heartbeat requires a bus")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("invalid heartbeat interval: %s", cfg.Interval)
	}

	lock := cfg.StateLock
	if lock == nil {
		lock = &sync.Mutex{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Heartbeat{
		bus:      cfg.Bus,
		event:    cfg.Event,
		interval: cfg.Interval,
		lock:     lock,
		logger:   logger,
	}, nil
}

// Start starts the heartbeat loop
func (h *Heartbeat) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return
	}
	h.running = true
	h.stopCh = make(chan struct{})
	h.doneCh = make(chan struct{})

	h.logger.Info("starting heartbeat",
		zap.Stringer("event", h.event),
		zap.Duration("interval", h.interval))

	go h.run(h.stopCh, h.doneCh)
}

// Stop stops the heartbeat and waits for the loop to exit
func (h *Heartbeat) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	stopCh, doneCh := h.stopCh, h.doneCh
	h.mu.Unlock()

	close(stopCh)
	<-doneCh

	h.logger.Info("heartbeat stopped")
}

// Beat emits the heartbeat event once with the given time
func (h *Heartbeat) Beat(at time.Time) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.bus.Emit(h.event, at)
}

// run is the main heartbeat loop
func (h *Heartbeat) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case at := <-ticker.C:
			if err := h.Beat(at); err != nil {
				h.logger.Error("heartbeat emit failed",
					zap.Stringer("event", h.event),
					zap.Error(err))
			}
		}
	}
}
