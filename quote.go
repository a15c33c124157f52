package completor

import (
	"strings"

	"github.com/rohnedwards/completor/parse"
)

// quoteMarker stands in for a command name when simulating how a value
// would tokenize as a bare argument
const quoteMarker = "__completor__"

// expandableRunes are treated by the host as interpolation or quoting
// syntax rather than literal text, so their presence always forces quoting
const expandableRunes = "$`'\""

// NeedsQuoting reports whether value must be quoted to round-trip as a
// single literal token. The decision is made by simulating the tokenization
// of "<marker> <value>": if the result is anything other than the marker
// followed by the unchanged value, the bare spelling would split, mutate or
// fail, and quoting is required. Untokenizable input fails safe as true.
func NeedsQuoting(value string) bool {
	if value == "" {
		return true
	}
	if strings.ContainsAny(value, expandableRunes) {
		return true
	}

	fields, err := parse.Split(quoteMarker + " " + value)
	if err != nil {
		return true
	}
	if len(fields) != 2 {
		return true
	}

	return fields[1] != value
}

// Quote wraps value in single quotes, doubling any embedded single quote
func Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func quoteIfNeeded(value string) string {
	if NeedsQuoting(value) {
		return Quote(value)
	}

	return value
}
