// Package eventbus provides a synchronous, in-process event bus with shared state.
//
// A Bus maps event names to ordered lists of callbacks. Every callback receives
// the bus's State map followed by the arguments passed to Emit, so subscribers
// can both react to an event and observe each other's changes.
//
// Example usage:
//
//	n := eventbus.Key("n")
//	bus, err := eventbus.New(
//	    eventbus.WithState(eventbus.State{n: 0}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	inc := eventbus.NewCallback(func(s eventbus.State, _ ...any) error {
//	    s[n] = s[n].(int) + 1
//	    return nil
//	})
//	bus.On(eventbus.Key("inc"), inc)
//	_ = bus.Emit(eventbus.Key("inc"))
//
// Names are either a Key (plain text) or a Symbol (a unique token created by
// NewSymbol). Registry access is safe for concurrent use; State is not.
package eventbus
