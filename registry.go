package completor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rohnedwards/completor/types"
)

// Member is one registered static member of an owner type
type Member struct {
	Name   string
	Kind   MemberKind
	TypeOf types.TypeTag
}

// OwnerType is an externally registered type whose members can be addressed
// through the attached Owner.Member parameter syntax
type OwnerType struct {
	Name    string
	Members []Member
}

// membersNamed returns every member whose name equals name (case-insensitive).
// More than one hit means the bare name is ambiguous across kinds.
func (o *OwnerType) membersNamed(name string) []Member {
	var found []Member
	for _, m := range o.Members {
		if strings.EqualFold(m.Name, name) {
			found = append(found, m)
		}
	}

	return found
}

// resolveMember resolves typed member text against the owner's members. A
// unique bare-name match wins; an ambiguous bare name requires a Property or
// Event suffix to pick the kind.
func (o *OwnerType) resolveMember(text string) (Member, error) {
	direct := o.membersNamed(text)
	if len(direct) == 1 {
		return direct[0], nil
	}
	if len(direct) > 1 {
		return Member{}, fmt.Errorf(FmtErrorWithString, ErrAmbiguousAttachedMember, o.Name+"."+text)
	}

	for _, suffix := range []struct {
		text string
		kind MemberKind
	}{
		{"Property", Property},
		{"Event", Event},
	} {
		base, hadSuffix := strings.CutSuffix(text, suffix.text)
		if !hadSuffix || base == "" {
			continue
		}
		for _, m := range o.membersNamed(base) {
			if m.Kind == suffix.kind {
				return m, nil
			}
		}
	}

	return Member{}, fmt.Errorf("%w: %s has no member '%s'", ErrUnknownMember, o.Name, text)
}

// TypeRegistry holds the owner types known to the attached-member resolver.
// Register everything before serving completion requests; the registry is
// read-only afterwards and therefore safe to share between requests.
type TypeRegistry struct {
	owners map[string]*OwnerType // keyed by folded full name
	short  map[string]string     // folded short name -> full name
}

// NewTypeRegistry creates an empty TypeRegistry
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		owners: map[string]*OwnerType{},
		short:  map[string]string{},
	}
}

// RegisterType adds an owner type under its full name and any number of
// short aliases. Re-registering a name replaces the earlier entry.
func (t *TypeRegistry) RegisterType(owner OwnerType, shortNames ...string) {
	t.owners[strings.ToLower(owner.Name)] = &owner
	for _, short := range shortNames {
		t.short[strings.ToLower(short)] = owner.Name
	}
}

// Lookup resolves an owner type name, trying the exact name first and
// falling back to the registered short names
func (t *TypeRegistry) Lookup(name string) (*OwnerType, bool) {
	if owner, ok := t.owners[strings.ToLower(name)]; ok {
		return owner, true
	}
	if full, ok := t.short[strings.ToLower(name)]; ok {
		if owner, ok := t.owners[strings.ToLower(full)]; ok {
			return owner, true
		}
	}

	return nil, false
}

// OwnerNames returns the registered full type names in sorted order
func (t *TypeRegistry) OwnerNames() []string {
	names := make([]string, 0, len(t.owners))
	for _, owner := range t.owners {
		names = append(names, owner.Name)
	}
	sort.Strings(names)

	return names
}
