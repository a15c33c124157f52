package completor

import (
	"fmt"
	"sort"
	"strings"

	deque "github.com/ef-ds/deque/v2"
	"github.com/rohnedwards/completor/parse"
	"github.com/rohnedwards/completor/types"
)

// cursorAnchor is the provisional record of where the cursor sits. During
// the element scan it holds either a parameter identity or an index into the
// unknown positional list; the positional post-pass resolves the index into
// a name when a positional descriptor consumes the anchored value.
type cursorAnchor struct {
	set        bool
	name       string
	positional int
}

func (a *cursorAnchor) toName(name string) {
	a.set = true
	a.name = name
	a.positional = 0
}

func (a *cursorAnchor) toPositional(index int) {
	a.set = true
	a.name = ""
	a.positional = index
}

// Bind walks the invocation's elements beyond the command name and matches
// them against the declared parameter descriptors. Named parameters match by
// exact name or alias first, then by unique prefix; leftover bare values bind
// to positional descriptors in declared order. Every anomaly becomes a
// diagnostic on the result, never an error return.
//
// The registry may be nil, which disables attached Owner.Member merging.
func Bind(elements []parse.Element, cursorOffset int, declared []ParameterDescriptor, registry *TypeRegistry) *BindingResult {
	return bindWithOptions(elements, cursorOffset, declared, registry, nil)
}

func bindWithOptions(elements []parse.Element, cursorOffset int, declared []ParameterDescriptor, registry *TypeRegistry, delimiterFunc types.ListDelimiterFunc) *BindingResult {
	res := newBindingResult()
	available := make([]ParameterDescriptor, len(declared))
	copy(available, declared)

	var anchor cursorAnchor
	state := parse.NewState(elements)
	for state.Advance() {
		el := state.Current()
		if el.IsParameter() {
			available = bindParameterElement(state, el, cursorOffset, available, registry, delimiterFunc, res, &anchor)
			continue
		}

		res.UnknownPositional = append(res.UnknownPositional, Literal(el.Text))
		if el.Contains(cursorOffset) {
			anchor.toPositional(len(res.UnknownPositional) - 1)
		}
	}

	available = bindPositionals(res, available, &anchor)
	res.Unmatched = available

	if anchor.set {
		res.ParameterInUse = &CursorParameter{Name: anchor.name, Position: anchor.positional}
	}

	return res
}

// bindParameterElement handles a single parameter-kind element: match it
// against the available descriptors, resolve its value, and anchor the
// cursor when the element or its consumed value contains it. Returns the
// available set with any consumed descriptor removed.
func bindParameterElement(state parse.State, el parse.Element, cursorOffset int, available []ParameterDescriptor, registry *TypeRegistry, delimiterFunc types.ListDelimiterFunc, res *BindingResult, anchor *cursorAnchor) []ParameterDescriptor {
	name := el.Name
	matches := matchAvailable(available, name)

	switch len(matches) {
	case 1:
		d := matches[0]
		value, consumed := resolveParameterValue(state, el, d.IsSwitch)
		res.Named.Set(d.Name, value)
		available = removeByName(available, d.Name)
		if el.Contains(cursorOffset) || (consumed != nil && consumed.Contains(cursorOffset)) {
			anchor.toName(d.Name)
		}

	case 0:
		match, mergedEnd, merged := tryAttached(state, el, registry, delimiterFunc, res)
		if merged {
			if (cursorOffset >= el.Start && cursorOffset <= mergedEnd) || valueContains(state, mergedEnd, cursorOffset) {
				anchor.toName(match.ParameterName())
			}
			res.Attached = append(res.Attached, *match)
			return available
		}

		res.addDiagnostic(fmt.Errorf(FmtErrorWithString, ErrUnknownParameter, name))
		value, consumed := resolveParameterValue(state, el, false)
		res.UnknownNamed.Set(name, value)
		if el.Contains(cursorOffset) || (consumed != nil && consumed.Contains(cursorOffset)) {
			anchor.toName(name)
		}

	default:
		res.addDiagnostic(fmt.Errorf("%w: -%s matches %s", ErrAmbiguousParameter, name, strings.Join(matchedNames(matches), ", ")))
		value, consumed := resolveParameterValue(state, el, false)
		res.UnknownNamed.Set(name, value)
		if el.Contains(cursorOffset) || (consumed != nil && consumed.Contains(cursorOffset)) {
			anchor.toName(name)
		}
	}

	return available
}

// tryAttached attempts the Owner.Member merge for a parameter element which
// matched no descriptor. On success the merged element (when the tokenizer
// split the name) and a following value element are consumed from the state,
// and mergedEnd is the end offset of the merged parameter text.
func tryAttached(state parse.State, el parse.Element, registry *TypeRegistry, delimiterFunc types.ListDelimiterFunc, res *BindingResult) (match *AttachedMemberMatch, mergedEnd int, ok bool) {
	var next *parse.Element
	if peeked, has := state.Peek(); has && peeked.Start == el.End {
		next = &peeked
	}

	match, usedNext, err := TryMergeAttachedMember(el.Name, next, registry)
	if err != nil {
		res.addDiagnostic(err)
		return nil, 0, false
	}
	if match == nil {
		return nil, 0, false
	}

	mergedEnd = el.End
	if usedNext {
		mergedEnd = next.End
		state.Skip()
	}

	raw := "true"
	if el.HasInline {
		raw = el.InlineValue
	} else if value, has := state.Peek(); has && !value.IsParameter() {
		state.Skip()
		raw = value.Text
	}
	if err := match.BindValue(raw, delimiterFunc); err != nil {
		res.addDiagnostic(err)
	}

	return match, mergedEnd, true
}

// valueContains reports whether the value element consumed for a merged
// attached member contains the cursor. The consumed value, if any, is the
// element at the state's current position past mergedEnd.
func valueContains(state parse.State, mergedEnd int, cursorOffset int) bool {
	cur := state.Current()
	if cur.Kind != parse.KindValue || cur.Start < mergedEnd {
		return false
	}

	return cur.Contains(cursorOffset)
}

// resolveParameterValue produces the value bound to a matched parameter
// element: the inline 'name:value' text when present, otherwise the
// following value element (consumed from the state), otherwise the switch
// default of true. Switch descriptors never consume a following element.
func resolveParameterValue(state parse.State, el parse.Element, isSwitch bool) (*Value, *parse.Element) {
	if el.HasInline {
		return Literal(el.InlineValue), nil
	}
	if !isSwitch {
		if next, ok := state.Peek(); ok && !next.IsParameter() {
			state.Skip()
			return Literal(next.Text), &next
		}
	}

	return Deferred(func() string { return "true" }), nil
}

// matchAvailable returns the descriptors the typed name selects. An exact
// name or alias match short-circuits so a parameter spelled exactly as typed
// is never shadowed by a longer one sharing the prefix.
func matchAvailable(available []ParameterDescriptor, name string) []ParameterDescriptor {
	for _, d := range available {
		if d.matchesExact(name) {
			return []ParameterDescriptor{d}
		}
	}

	var matches []ParameterDescriptor
	for _, d := range available {
		if d.matchesPrefix(name) {
			matches = append(matches, d)
		}
	}

	return matches
}

// bindPositionals assigns the leftover bare values to the remaining
// descriptors which declare a position, ascending by position, consuming
// values from the front. A positional cursor anchor is decremented for each
// value consumed ahead of it and converted to the consuming descriptor's
// name when it reaches zero.
func bindPositionals(res *BindingResult, available []ParameterDescriptor, anchor *cursorAnchor) []ParameterDescriptor {
	var positional []ParameterDescriptor
	for _, d := range available {
		if d.Position != nil {
			positional = append(positional, d)
		}
	}
	sort.SliceStable(positional, func(i, j int) bool {
		return *positional[i].Position < *positional[j].Position
	})

	var pending deque.Deque[*Value]
	for _, v := range res.UnknownPositional {
		pending.PushBack(v)
	}

	for _, d := range positional {
		value, ok := pending.PopFront()
		if !ok {
			break
		}
		res.Named.Set(d.Name, value)
		available = removeByName(available, d.Name)
		if anchor.set && anchor.name == "" {
			if anchor.positional == 0 {
				anchor.name = d.Name
			} else {
				anchor.positional--
			}
		}
	}

	rest := make([]*Value, 0, pending.Len())
	for {
		value, ok := pending.PopFront()
		if !ok {
			break
		}
		rest = append(rest, value)
	}
	res.UnknownPositional = rest

	return available
}

func removeByName(descriptors []ParameterDescriptor, name string) []ParameterDescriptor {
	for i, d := range descriptors {
		if d.Name == name {
			return append(descriptors[:i:i], descriptors[i+1:]...)
		}
	}

	return descriptors
}

func matchedNames(descriptors []ParameterDescriptor) []string {
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.Name)
	}

	return names
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
