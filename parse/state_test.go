package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testElements(t *testing.T) []Element {
	t.Helper()
	elements, err := Tokenize("-Verb show extra")
	assert.Nil(t, err)

	return elements
}

func TestState_AdvanceWalksAllElements(t *testing.T) {
	state := NewState(testElements(t))
	assert.Equal(t, -1, state.Pos())
	assert.Equal(t, 3, state.Len())

	var texts []string
	for state.Advance() {
		texts = append(texts, state.Current().Text)
	}
	assert.Equal(t, []string{"-Verb", "show", "extra"}, texts)
	assert.False(t, state.Advance(), "advance past the end must fail")
}

func TestState_PeekDoesNotMove(t *testing.T) {
	state := NewState(testElements(t))
	next, ok := state.Peek()
	assert.True(t, ok)
	assert.Equal(t, "-Verb", next.Text)
	assert.Equal(t, -1, state.Pos())

	state.SetPos(2)
	_, ok = state.Peek()
	assert.False(t, ok)
}

func TestState_SkipConsumesElement(t *testing.T) {
	state := NewState(testElements(t))
	state.Advance()
	state.Skip()
	assert.Equal(t, "show", state.Current().Text)
}

func TestState_At(t *testing.T) {
	state := NewState(testElements(t))
	el, err := state.At(1)
	assert.Nil(t, err)
	assert.Equal(t, "show", el.Text)

	_, err = state.At(5)
	assert.True(t, errors.Is(err, ErrInvalidPosition))
	_, err = state.At(-1)
	assert.True(t, errors.Is(err, ErrInvalidPosition))
}

func TestState_CurrentOutOfRangeIsZero(t *testing.T) {
	state := NewState(testElements(t))
	assert.Equal(t, Element{}, state.Current())
}
