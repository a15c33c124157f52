package parse

// ElementKind distinguishes parameter tokens from value tokens
type ElementKind int

const (
	// KindValue denotes a bare or quoted literal token
	KindValue ElementKind = iota
	// KindParameter denotes a token introduced by a parameter prefix ('-')
	KindParameter
)

// Element is one lexical token of a command invocation. Elements are
// immutable once produced by Tokenize. Start and End are byte offsets into
// the original input; End is exclusive, so adjacent tokens produced by
// splitting a single word satisfy next.Start == prev.End.
type Element struct {
	Kind        ElementKind
	Text        string // decoded token text (quotes stripped, escapes resolved)
	Name        string // parameter name without prefix; empty for KindValue
	InlineValue string // value part of a 'name:value' parameter token
	HasInline   bool
	Start       int
	End         int
}

// Contains reports whether the cursor offset pos falls within the element's
// extent. Both boundaries are inclusive: a cursor sitting exactly between
// two adjacent elements is contained by both, and callers scanning left to
// right let the later element win.
func (e Element) Contains(pos int) bool {
	return pos >= e.Start && pos <= e.End
}

// IsParameter reports whether the element is a parameter token
func (e Element) IsParameter() bool {
	return e.Kind == KindParameter
}
