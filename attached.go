package completor

import (
	"fmt"
	"regexp"

	"github.com/rohnedwards/completor/parse"
	"github.com/rohnedwards/completor/types"
	"github.com/rohnedwards/completor/util"
)

// attachedMemberPattern matches Owner.Member and Owner::Member spellings.
// Kind suffix handling happens during member resolution, not here.
var attachedMemberPattern = regexp.MustCompile(`^([A-Za-z_]\w*)(?:::|\.)([A-Za-z_]\w*)$`)

// TryMergeAttachedMember attempts to interpret a parameter name which failed
// ordinary descriptor matching as an attached Owner.Member reference. When
// the name alone does not form the pattern, the adjacent element - the
// tokenizer splits '-Grid.Row' into '-Grid' and '.Row' - is merged in;
// usedNext reports that the caller must consume it.
//
// A nil match with a nil error means the name is simply not an attached
// member. A non-nil error is a diagnostic (unknown owner, unknown member,
// ambiguous member without a kind suffix) and the caller treats the original
// tokens as an unknown parameter.
func TryMergeAttachedMember(paramName string, next *parse.Element, registry *TypeRegistry) (match *AttachedMemberMatch, usedNext bool, err error) {
	if registry == nil {
		return nil, false, nil
	}

	candidate := paramName
	parts := attachedMemberPattern.FindStringSubmatch(candidate)
	if parts == nil && next != nil && next.Kind == parse.KindValue {
		candidate = paramName + next.Text
		parts = attachedMemberPattern.FindStringSubmatch(candidate)
		usedNext = parts != nil
	}
	if parts == nil {
		return nil, false, nil
	}

	ownerName, memberText := parts[1], parts[2]
	owner, ok := registry.Lookup(ownerName)
	if !ok {
		return nil, false, fmt.Errorf(FmtErrorWithString, ErrUnknownOwnerType, ownerName)
	}

	member, err := owner.resolveMember(memberText)
	if err != nil {
		return nil, false, err
	}

	return &AttachedMemberMatch{
		Owner:  owner.Name,
		Member: member.Name,
		Kind:   member.Kind,
		typeOf: member.TypeOf,
	}, usedNext, nil
}

// BindValue records the raw value token text and coerces it to the member's
// declared type. Coercion failure keeps the raw text as the coerced value
// and reports a diagnostic; the match itself stands.
func (m *AttachedMemberMatch) BindValue(raw string, delimiterFunc types.ListDelimiterFunc) error {
	m.RawValue = raw
	coerced, err := util.Coerce(raw, m.typeOf, delimiterFunc)
	if err != nil {
		m.CoercedValue = raw
		return fmt.Errorf(FmtErrorWithString, ErrCoercionFailure, err.Error())
	}
	m.CoercedValue = coerced

	return nil
}
