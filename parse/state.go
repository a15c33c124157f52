package parse

import "errors"

// State represents the current position of a binding pass over the elements
// of an invocation
type State interface {
	Pos() int                     // Get the current position
	SetPos(pos int)               // Set the current position
	Skip()                        // Skip the current element
	Elements() []Element          // Get the entire element list
	Current() Element             // Get the current element
	At(pos int) (Element, error)  // Get the element at a specific position
	Peek() (Element, bool)        // Peek at the next element
	Advance() bool                // Advance to the next element
	Len() int                     // Gets the length of the element list
}

// ErrInvalidPosition is an error that occurs when an invalid position is accessed
var ErrInvalidPosition = errors.New("invalid position")

// DefaultState is the default implementation of the State interface
type DefaultState struct {
	pos      int
	elements []Element
}

// NewState creates a new State instance over the given element list
func NewState(elements []Element) State {
	return &DefaultState{
		pos:      -1,
		elements: elements,
	}
}

// Pos returns the current position in the element list
func (s *DefaultState) Pos() int {
	return s.pos
}

// SetPos sets the current position in the element list
func (s *DefaultState) SetPos(pos int) {
	s.pos = pos
}

// Skip advances the current position to the next element
func (s *DefaultState) Skip() {
	s.pos++
}

// Elements returns the entire element list
func (s *DefaultState) Elements() []Element {
	return s.elements
}

// Current returns the current element
func (s *DefaultState) Current() Element {
	if s.pos < 0 || s.pos >= len(s.elements) {
		return Element{}
	}
	return s.elements[s.pos]
}

// Advance advances to the next element, returning true if successful
func (s *DefaultState) Advance() bool {
	if s.pos+1 < len(s.elements) {
		s.pos++
		return true
	}
	return false
}

// Peek returns the next element without advancing the current position
func (s *DefaultState) Peek() (Element, bool) {
	if s.pos+1 < len(s.elements) {
		return s.elements[s.pos+1], true
	}

	return Element{}, false
}

// At returns the element at a specific position
func (s *DefaultState) At(pos int) (Element, error) {
	if pos < 0 || pos >= len(s.elements) {
		return Element{}, ErrInvalidPosition
	}

	return s.elements[pos], nil
}

// Len returns the length of the element list
func (s *DefaultState) Len() int {
	return len(s.elements)
}
