package eventbus

import (
	"fmt"

	"github.com/google/uuid"
)

// Name identifies an event or a State entry. It is implemented by Key and Symbol only.
type Name interface {
	fmt.Stringer
	isName()
}

// Key is a textual name. Two equal strings are the same Key.
type Key string

// String returns the key text
func (k Key) String() string { return string(k) }

func (Key) isName() {}

// Symbol is an opaque name. Every call to NewSymbol yields a symbol that is
// distinct from all other symbols and keys, whatever its description.
type Symbol struct {
	id          uuid.UUID
	description string
}

// NewSymbol creates a new unique symbol
func NewSymbol(description string) Symbol {
	return Symbol{id: uuid.New(), description: description}
}

// Description returns the text the symbol was created with
func (s Symbol) Description() string { return s.description }

// String returns Symbol(<description>)
func (s Symbol) String() string {
	return fmt.Sprintf("Symbol(%s)", s.description)
}

func (Symbol) isName() {}

// validName reports whether n can be used as a registry key.
func validName(n Name) bool {
	switch v := n.(type) {
	case Key:
		return true
	case Symbol:
		return v.id != uuid.Nil
	default:
		return false
	}
}

// nameString renders a possibly nil name for diagnostics.
func nameString(n Name) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}
