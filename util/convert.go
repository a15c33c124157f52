// Package util provides string-to-value conversion helpers for the engine.
package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rohnedwards/completor/types"
)

// Coerce converts raw token text to the Go value matching the declared
// semantic type. The caller decides what a failed conversion means; Coerce
// itself never falls back silently.
func Coerce(value string, typeOf types.TypeTag, delimiterFunc types.ListDelimiterFunc) (any, error) {
	switch typeOf {
	case types.String:
		return value, nil
	case types.Int:
		val, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as int: %w", value, err)
		}
		return val, nil
	case types.Float:
		val, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float: %w", value, err)
		}
		return val, nil
	case types.Bool:
		val, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as bool: %w", value, err)
		}
		return val, nil
	case types.Time:
		val, err := dateparse.ParseLocal(value)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as time: %w", value, err)
		}
		return val, nil
	case types.Duration:
		val, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as duration: %w", value, err)
		}
		return val, nil
	case types.List:
		if delimiterFunc == nil {
			delimiterFunc = DefaultListDelimiter
		}
		return strings.FieldsFunc(value, delimiterFunc), nil
	default:
		return nil, fmt.Errorf("unsupported type tag %d", typeOf)
	}
}

// DefaultListDelimiter matches the runes which split List values
func DefaultListDelimiter(r rune) bool {
	return r == ',' || r == '|' || r == ' '
}
