package eventbus

// State is the shared map handed to every callback.
type State map[Name]any

// Func is the body of a callback. A non-nil error aborts the emit in progress.
type Func func(state State, args ...any) error

// Callback is a registrable handle around a Func. Off matches handles by
// identity, so keep the pointer returned by NewCallback to unregister later.
type Callback struct {
	fn Func
}

// NewCallback wraps fn in a new handle
func NewCallback(fn Func) *Callback {
	return &Callback{fn: fn}
}

func (c *Callback) valid() bool {
	return c != nil && c.fn != nil
}
