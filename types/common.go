// Package types holds small shared definitions used across the engine and
// its conversion helpers.
package types

// TypeTag is the semantic value type declared by a parameter descriptor or
// a registered member. It drives best-effort coercion of raw token text.
type TypeTag int

const (
	// String denotes an uninterpreted string value
	String TypeTag = iota
	// Int denotes a whole number
	Int
	// Float denotes a floating point number
	Float
	// Bool denotes a boolean value
	Bool
	// Time denotes a date/time value parsed leniently from common formats
	Time
	// Duration denotes a Go-style duration literal such as "1h30m"
	Duration
	// List denotes a delimited list of strings (split on ',', '|' or ' ')
	List
)

func (t TypeTag) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Time:
		return "time"
	case Duration:
		return "duration"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// ListDelimiterFunc reports whether a rune separates elements of a List
// value. The default splits on ',', '|' and ' '.
type ListDelimiterFunc func(matchOn rune) bool
