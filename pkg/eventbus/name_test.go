package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbol_Unique(t *testing.T) {
	a := NewSymbol("same")
	b := NewSymbol("same")

	assert.NotEqual(t, a, b)
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "Symbol(same)", a.String())
	assert.Equal(t, "same", a.Description())

	var asName Name = a
	assert.NotEqual(t, Name(Key("Symbol(same)")), asName)
}

func TestKey_Equality(t *testing.T) {
	var a Name = Key("evt")
	var b Name = Key("e" + "vt")

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.Equal(t, "evt", a.String())
}

func TestValidName(t *testing.T) {
	assert.True(t, validName(Key("")))
	assert.True(t, validName(NewSymbol("")))
	assert.False(t, validName(Symbol{}))
	assert.False(t, validName(nil))
}

func TestState_KeyedByName(t *testing.T) {
	sym := NewSymbol("k")
	s := State{Key("k"): 1, sym: 2}

	assert.Len(t, s, 2)
	assert.Equal(t, 1, s[Key("k")])
	assert.Equal(t, 2, s[sym])
	assert.Nil(t, s[NewSymbol("k")])
}
