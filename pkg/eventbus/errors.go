package eventbus

import (
	"errors"
	"fmt"
)

// ErrType is matched by every TypeError
var ErrType = errors.New("type mismatch")

// TypeError reports an argument of the wrong shape. It indicates misuse of the
// API and is never produced by runtime conditions.
type TypeError struct {
	Arg  string
	Want string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s must be a %s", e.Arg, e.Want)
}

// Unwrap returns ErrType
func (e *TypeError) Unwrap() error { return ErrType }

var (
	errOptions   = &TypeError{Arg: "options", Want: "object"}
	errState     = &TypeError{Arg: "state", Want: "object"}
	errEvents    = &TypeError{Arg: "events", Want: "object"}
	errEventName = &TypeError{Arg: "eventName", Want: "string or symbol"}
	errCallback  = &TypeError{Arg: "callback", Want: "function"}
)
