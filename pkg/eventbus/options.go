package eventbus

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option configures a Bus created by New
type Option func(*settings)

// settings collects option values before validation
type settings struct {
	state     State
	stateSet  bool
	events    map[Name]*Callback
	eventsSet bool
	logger    *zap.Logger
	loggerSet bool
	metrics   Metrics
	metricSet bool
}

// WithState makes s the bus state. The map is kept by reference, not copied.
func WithState(s State) Option {
	return func(o *settings) {
		o.state = s
		o.stateSet = true
	}
}

// WithEvents registers one initial callback per name
func WithEvents(events map[Name]*Callback) Option {
	return func(o *settings) {
		o.events = events
		o.eventsSet = true
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(o *settings) {
		o.logger = logger
		o.loggerSet = true
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m Metrics) Option {
	return func(o *settings) {
		o.metrics = m
		o.metricSet = true
	}
}

// validate checks settings in the order options, state, events.
func (o *settings) validate() error {
	if (o.loggerSet && o.logger == nil) || (o.metricSet && o.metrics == nil) {
		return errOptions
	}
	if o.stateSet && o.state == nil {
		return errState
	}
	if o.eventsSet && o.events == nil {
		return errEvents
	}
	for name, cb := range o.events {
		if !validName(name) {
			return errEventName
		}
		if !cb.valid() {
			return errCallback
		}
	}
	return nil
}

func (o *settings) applyDefaults() {
	if o.state == nil {
		o.state = make(State)
	}
	if o.logger == nil {
		o.logger = defaultLogger()
	}
	if o.metrics == nil {
		o.metrics = nopMetrics{}
	}
}

// defaultLogger writes warnings and above to stderr
func defaultLogger() *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		zapcore.WarnLevel,
	)
	return zap.New(core).Named("eventbus")
}
