package completor

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rohnedwards/completor/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MetadataSource is the capability through which the engine learns a
// command's declared parameters. How the metadata is obtained (reflection,
// a remote service, a static table) is outside the engine's concern.
type MetadataSource interface {
	DescribeCommand(name string) ([]ParameterDescriptor, error)
}

// MetadataSourceFunc adapts a plain function to the MetadataSource interface
type MetadataSourceFunc func(name string) ([]ParameterDescriptor, error)

// DescribeCommand calls f
func (f MetadataSourceFunc) DescribeCommand(name string) ([]ParameterDescriptor, error) {
	return f(name)
}

// ParameterDescriptor is the declared shape of one command parameter. It is
// read-only during a binding pass; the binder works on its own available set
// and never mutates the descriptors it was handed.
type ParameterDescriptor struct {
	Name     string
	Aliases  []string
	Position *int // nil when the parameter cannot bind positionally
	IsSwitch bool
	TypeOf   types.TypeTag
}

// matchesPrefix reports whether the descriptor's name or any alias starts
// with the typed prefix (case-insensitive)
func (d *ParameterDescriptor) matchesPrefix(prefix string) bool {
	if hasFoldPrefix(d.Name, prefix) {
		return true
	}
	for _, alias := range d.Aliases {
		if hasFoldPrefix(alias, prefix) {
			return true
		}
	}

	return false
}

// matchesExact reports whether the typed name equals the descriptor's name
// or one of its aliases (case-insensitive)
func (d *ParameterDescriptor) matchesExact(name string) bool {
	if equalFold(d.Name, name) {
		return true
	}
	for _, alias := range d.Aliases {
		if equalFold(alias, name) {
			return true
		}
	}

	return false
}

// Value is the resolved argument of a bound parameter. It is either a
// literal taken from the command line or a deferred default evaluated
// exactly once when first requested.
type Value struct {
	literal  string
	deferred func() string
	resolved bool
}

// Literal wraps token text as an already-resolved Value
func Literal(text string) *Value {
	return &Value{literal: text, resolved: true}
}

// Deferred wraps a producer whose result is computed on first Resolve and
// cached for every later call
func Deferred(produce func() string) *Value {
	return &Value{deferred: produce}
}

// Resolve returns the value's text, evaluating a deferred producer at most once
func (v *Value) Resolve() string {
	if !v.resolved {
		if v.deferred != nil {
			v.literal = v.deferred()
		}
		v.resolved = true
	}

	return v.literal
}

// MemberKind distinguishes the two member flavors an owner type can register
type MemberKind int

const (
	// Property denotes a settable attached property
	Property MemberKind = iota
	// Event denotes an attached event with a handler value
	Event
)

func (k MemberKind) String() string {
	if k == Event {
		return "Event"
	}

	return "Property"
}

// AttachedMemberMatch is the merged form of a Type.Member parameter along
// with its raw and best-effort coerced value
type AttachedMemberMatch struct {
	Owner        string
	Member       string
	Kind         MemberKind
	RawValue     string
	CoercedValue any

	typeOf types.TypeTag // declared value/handler type, drives coercion
}

// ParameterName returns the canonical single-token spelling of the match
func (m AttachedMemberMatch) ParameterName() string {
	return m.Owner + "." + m.Member
}

// CursorParameter identifies the parameter the cursor sits on. Name is set
// once the identity is known; while the cursor rests on an unbound
// positional value only Position carries meaning.
type CursorParameter struct {
	Name     string
	Position int
}

// IsPositional reports whether the cursor parameter is still an unresolved
// positional index
func (c *CursorParameter) IsPositional() bool {
	return c.Name == ""
}

// Key returns the lookup key a candidate provider should use: the parameter
// name, or the synthetic key labeling the unresolved positional slot
func (c *CursorParameter) Key() string {
	if c.IsPositional() {
		return positionalKey(c.Position)
	}

	return c.Name
}

// BindingResult is the outcome of one binding pass. It is created fresh per
// completion request and never shared; the three argument collections
// partition the invocation's tokens with no overlap.
type BindingResult struct {
	Named             *orderedmap.OrderedMap[string, *Value]
	UnknownNamed      *orderedmap.OrderedMap[string, *Value]
	UnknownPositional []*Value
	Attached          []AttachedMemberMatch
	Unmatched         []ParameterDescriptor
	Diagnostics       []error
	ParameterInUse    *CursorParameter
}

func newBindingResult() *BindingResult {
	return &BindingResult{
		Named:        orderedmap.New[string, *Value](),
		UnknownNamed: orderedmap.New[string, *Value](),
	}
}

func (r *BindingResult) addDiagnostic(err error) {
	r.Diagnostics = append(r.Diagnostics, err)
}

// FakeBound projects the binding into the best-effort reconstruction of what
// the user has already supplied, keyed for consumption by a candidate
// provider: unknown named arguments first, then named arguments (overriding
// on key collision), then leftover positional values under synthetic keys.
func (r *BindingResult) FakeBound() *orderedmap.OrderedMap[string, string] {
	projection := orderedmap.New[string, string]()
	for pair := r.UnknownNamed.Oldest(); pair != nil; pair = pair.Next() {
		projection.Set(pair.Key, pair.Value.Resolve())
	}
	for pair := r.Named.Oldest(); pair != nil; pair = pair.Next() {
		projection.Set(pair.Key, pair.Value.Resolve())
	}
	for _, m := range r.Attached {
		projection.Set(m.ParameterName(), m.RawValue)
	}
	for i, v := range r.UnknownPositional {
		projection.Set(positionalKey(i), v.Resolve())
	}

	return projection
}

func positionalKey(index int) string {
	return fmt.Sprintf("positional%d", index)
}

// CandidateCategory classifies a completion candidate
type CandidateCategory int

const (
	// CategoryCommand denotes a command name candidate
	CategoryCommand CandidateCategory = iota
	// CategoryParameterName denotes a '-Name' parameter candidate
	CategoryParameterName
	// CategoryParameterValue denotes a value candidate for the parameter in use
	CategoryParameterValue
)

// CompletionCandidate is one suggested replacement for the text being
// typed, with separate insertion and display forms
type CompletionCandidate struct {
	InsertionText string
	DisplayText   string
	Category      CandidateCategory
	Tooltip       string
}

// SortDirective selects the ranking order of surviving candidates
type SortDirective int

const (
	// SortAlphabetical sorts ascending by display text (the default)
	SortAlphabetical SortDirective = iota
	// SortFrequencyAscending sorts by ascending occurrence count
	SortFrequencyAscending
	// SortFrequencyDescending sorts by descending occurrence count
	SortFrequencyDescending
)

// Result is the outcome of one completion request
type Result struct {
	Candidates  []CompletionCandidate
	Binding     *BindingResult
	Diagnostics []error
}

// Engine runs the completion pipeline. It holds configuration only; every
// request receives its own binding result and pool snapshot, so a single
// Engine may serve concurrent requests without locking.
type Engine struct {
	meta            MetadataSource
	registry        *TypeRegistry
	provider        PoolFunc
	providerTimeout time.Duration
	listFunc        types.ListDelimiterFunc
	debug           io.Writer
}

var (
	ErrUnknownParameter        = errors.New("unknown named parameter")
	ErrAmbiguousParameter      = errors.New("ambiguous parameter")
	ErrAmbiguousAttachedMember = errors.New("ambiguous attached member - add a Property or Event suffix")
	ErrUnknownOwnerType        = errors.New("unknown owner type")
	ErrUnknownMember           = errors.New("unknown member")
	ErrMetadataUnavailable     = errors.New("command metadata unavailable")
	ErrProviderTimeout         = errors.New("candidate provider timed out")
	ErrCoercionFailure         = errors.New("cannot coerce attached member value")
)

const (
	FmtErrorWithString = "%w: %s"
)
