// Package fxmodule provides an fx module that constructs the event bus from
// whatever logger, metrics sink and initial state the application supplies.
//
//	app := fx.New(
//	    fx.Supply(logger),
//	    fxmodule.Module(),
//	    fx.Invoke(func(bus *eventbus.Bus) {
//	        bus.On(eventbus.Key("ready"), onReady)
//	    }),
//	)
package fxmodule

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/aescanero/statebus/pkg/eventbus"
)

// Params are the optional dependencies of the bus
type Params struct {
	fx.In

	Logger  *zap.Logger      `optional:"true"`
	Metrics eventbus.Metrics `optional:"true"`
	State   eventbus.State   `optional:"true"`
}

// Result is the module output
type Result struct {
	fx.Out

	Bus *eventbus.Bus
}

// Module returns the fx module
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideBus builds the bus from p
func ProvideBus(p Params) (Result, error) {
	var opts []eventbus.Option
	if p.Logger != nil {
		opts = append(opts, eventbus.WithLogger(p.Logger.Named("eventbus")))
	}
	if p.Metrics != nil {
		opts = append(opts, eventbus.WithMetrics(p.Metrics))
	}
	if p.State != nil {
		opts = append(opts, eventbus.WithState(p.State))
	}

	bus, err := eventbus.New(opts...)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create event bus: %w", err)
	}

	return Result{Bus: bus}, nil
}

type lifecycleInput struct {
	fx.In

	LC     fx.Lifecycle
	Bus    *eventbus.Bus
	Logger *zap.Logger `optional:"true"`
}

func registerLifecycle(in lifecycleInput) {
	logger := in.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	in.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("event bus ready", zap.Int("events", len(in.Bus.Events())))
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("event bus stopped", zap.Int("events", len(in.Bus.Events())))
			return nil
		},
	})
}
