package completor

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rohnedwards/completor/parse"
	"github.com/rohnedwards/completor/types"
	"github.com/stretchr/testify/assert"
)

func pos(p int) *int { return &p }

func testDescriptors() []ParameterDescriptor {
	return []ParameterDescriptor{
		{Name: "Verb", TypeOf: types.String},
		{Name: "Verbose", IsSwitch: true, TypeOf: types.Bool},
		{Name: "Path", Aliases: []string{"FilePath"}, Position: pos(0), TypeOf: types.String},
		{Name: "Kind", Position: pos(1), TypeOf: types.String},
	}
}

func mustTokenize(t *testing.T, line string) []parse.Element {
	t.Helper()
	elements, err := parse.Tokenize(line)
	assert.Nil(t, err)

	return elements
}

func namedValue(t *testing.T, res *BindingResult, name string) string {
	t.Helper()
	value, ok := res.Named.Get(name)
	assert.True(t, ok, "expected %s to be bound", name)
	if !ok {
		return ""
	}

	return value.Resolve()
}

func TestBind_ExactNameShortCircuitsPrefixAmbiguity(t *testing.T) {
	res := Bind(mustTokenize(t, "-Verb show"), -1, testDescriptors(), nil)

	assert.Empty(t, res.Diagnostics, "-Verb matches Verb exactly despite Verbose sharing the prefix")
	assert.Equal(t, "show", namedValue(t, res, "Verb"))
	_, bound := res.Named.Get("Verbose")
	assert.False(t, bound)
}

func TestBind_AmbiguousPrefix(t *testing.T) {
	res := Bind(mustTokenize(t, "-Ver show"), -1, testDescriptors(), nil)

	assert.Len(t, res.Diagnostics, 1)
	assert.True(t, errors.Is(res.Diagnostics[0], ErrAmbiguousParameter))
	assert.Contains(t, res.Diagnostics[0].Error(), "Verb")
	assert.Contains(t, res.Diagnostics[0].Error(), "Verbose")

	value, ok := res.UnknownNamed.Get("Ver")
	assert.True(t, ok)
	assert.Equal(t, "show", value.Resolve())
	assert.Equal(t, 0, res.Named.Len(), "an ambiguous name must not bind either descriptor")
}

func TestBind_UniquePrefixBinds(t *testing.T) {
	res := Bind(mustTokenize(t, "-Verbo"), -1, testDescriptors(), nil)

	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "true", namedValue(t, res, "Verbose"))
}

func TestBind_AliasMatches(t *testing.T) {
	res := Bind(mustTokenize(t, "-FilePath a.txt"), -1, testDescriptors(), nil)

	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "a.txt", namedValue(t, res, "Path"), "aliases bind under the canonical name")
}

func TestBind_SwitchDoesNotConsumeFollowingValue(t *testing.T) {
	res := Bind(mustTokenize(t, "-Verbose target"), -1, testDescriptors(), nil)

	assert.Equal(t, "true", namedValue(t, res, "Verbose"))
	assert.Equal(t, "target", namedValue(t, res, "Path"), "the value after a switch is positional")
}

func TestBind_InlineValue(t *testing.T) {
	res := Bind(mustTokenize(t, "-Verb:show next"), -1, testDescriptors(), nil)

	assert.Equal(t, "show", namedValue(t, res, "Verb"))
	assert.Equal(t, "next", namedValue(t, res, "Path"))
}

func TestBind_TrailingParameterDefaultsToSwitch(t *testing.T) {
	res := Bind(mustTokenize(t, "-Verb"), -1, testDescriptors(), nil)

	assert.Equal(t, "true", namedValue(t, res, "Verb"))
}

func TestBind_PositionalOrder(t *testing.T) {
	res := Bind(mustTokenize(t, "alpha beta"), -1, testDescriptors(), nil)

	assert.Equal(t, "alpha", namedValue(t, res, "Path"))
	assert.Equal(t, "beta", namedValue(t, res, "Kind"))
	assert.Empty(t, res.UnknownPositional)
}

func TestBind_LeftoverPositionalStaysUnknown(t *testing.T) {
	res := Bind(mustTokenize(t, "alpha beta gamma"), -1, testDescriptors(), nil)

	assert.Len(t, res.UnknownPositional, 1)
	assert.Equal(t, "gamma", res.UnknownPositional[0].Resolve())
}

func TestBind_UnknownParameter(t *testing.T) {
	res := Bind(mustTokenize(t, "-Nope v"), -1, testDescriptors(), nil)

	assert.Len(t, res.Diagnostics, 1)
	assert.True(t, errors.Is(res.Diagnostics[0], ErrUnknownParameter))
	value, ok := res.UnknownNamed.Get("Nope")
	assert.True(t, ok)
	assert.Equal(t, "v", value.Resolve())
}

func TestBind_EmptyDescriptorSet(t *testing.T) {
	res := Bind(mustTokenize(t, "-Verb show"), -1, nil, nil)

	assert.True(t, errors.Is(res.Diagnostics[0], ErrUnknownParameter))
	_, ok := res.UnknownNamed.Get("Verb")
	assert.True(t, ok)
}

func TestBind_AttachedMemberMerge(t *testing.T) {
	res := Bind(mustTokenize(t, "-Grid.Row 2"), -1, testDescriptors(), testRegistry())

	assert.Empty(t, res.Diagnostics)
	assert.Len(t, res.Attached, 1)
	m := res.Attached[0]
	assert.Equal(t, "Grid", m.Owner)
	assert.Equal(t, "Row", m.Member)
	assert.Equal(t, Property, m.Kind)
	assert.Equal(t, "2", m.RawValue)
	assert.Equal(t, int64(2), m.CoercedValue)
	assert.Equal(t, 0, res.UnknownNamed.Len(), "a merged attached member is not an unknown parameter")
}

func TestBind_AttachedMemberAmbiguousFallsThrough(t *testing.T) {
	res := Bind(mustTokenize(t, "-Grid.Loaded x"), -1, testDescriptors(), testRegistry())

	assert.True(t, errors.Is(errors.Join(res.Diagnostics...), ErrAmbiguousAttachedMember))
	assert.True(t, errors.Is(errors.Join(res.Diagnostics...), ErrUnknownParameter))
	assert.Empty(t, res.Attached)
	_, ok := res.UnknownNamed.Get("Grid")
	assert.True(t, ok, "the original tokens fall through to unknown handling")
}

func TestBind_AttachedMemberCoercionFailure(t *testing.T) {
	res := Bind(mustTokenize(t, "-Grid.Row wide"), -1, testDescriptors(), testRegistry())

	assert.Len(t, res.Attached, 1)
	assert.Equal(t, "wide", res.Attached[0].CoercedValue)
	assert.True(t, errors.Is(errors.Join(res.Diagnostics...), ErrCoercionFailure))
}

func TestBind_CursorOnParameterName(t *testing.T) {
	res := Bind(mustTokenize(t, "-Verb show"), 3, testDescriptors(), nil)

	assert.NotNil(t, res.ParameterInUse)
	assert.Equal(t, "Verb", res.ParameterInUse.Name)
	assert.False(t, res.ParameterInUse.IsPositional())
}

func TestBind_CursorOnConsumedValue(t *testing.T) {
	// "-Verb show": the cursor inside 'show' belongs to Verb
	res := Bind(mustTokenize(t, "-Verb show"), 8, testDescriptors(), nil)

	assert.NotNil(t, res.ParameterInUse)
	assert.Equal(t, "Verb", res.ParameterInUse.Name)
}

func TestBind_CursorOnPositionalResolvesToDescriptor(t *testing.T) {
	// cursor inside 'beta', which the positional pass hands to Kind
	res := Bind(mustTokenize(t, "alpha beta"), 7, testDescriptors(), nil)

	assert.NotNil(t, res.ParameterInUse)
	assert.Equal(t, "Kind", res.ParameterInUse.Name)
}

func TestBind_CursorOnUnboundPositionalKeepsIndex(t *testing.T) {
	// 'gamma' outlives the positional pass; its index rebases to zero
	res := Bind(mustTokenize(t, "alpha beta gamma"), 12, testDescriptors(), nil)

	assert.NotNil(t, res.ParameterInUse)
	assert.True(t, res.ParameterInUse.IsPositional())
	assert.Equal(t, "positional0", res.ParameterInUse.Key())
}

func TestBind_CursorInsideMergedAttachedMember(t *testing.T) {
	// offset 5 is the boundary between '-Grid' and '.Row'
	res := Bind(mustTokenize(t, "-Grid.Row 2"), 5, testDescriptors(), testRegistry())

	assert.NotNil(t, res.ParameterInUse)
	assert.Equal(t, "Grid.Row", res.ParameterInUse.Name)
}

func TestBind_CursorOnAttachedValue(t *testing.T) {
	res := Bind(mustTokenize(t, "-Grid.Row 2"), 11, testDescriptors(), testRegistry())

	assert.NotNil(t, res.ParameterInUse)
	assert.Equal(t, "Grid.Row", res.ParameterInUse.Name)
}

func TestBind_NoCursor(t *testing.T) {
	res := Bind(mustTokenize(t, "-Verb show"), -1, testDescriptors(), nil)
	assert.Nil(t, res.ParameterInUse)
}

func TestBind_UnmatchedDescriptors(t *testing.T) {
	res := Bind(mustTokenize(t, "-Verb show"), -1, testDescriptors(), nil)

	var names []string
	for _, d := range res.Unmatched {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	assert.Equal(t, "Kind Path Verbose", strings.Join(names, " "))
}

func TestBindingResult_FakeBound(t *testing.T) {
	res := Bind(mustTokenize(t, "-Nope x -Verb show stray"), -1, []ParameterDescriptor{
		{Name: "Verb", TypeOf: types.String},
		{Name: "Verbose", IsSwitch: true, TypeOf: types.Bool},
	}, nil)

	projection := res.FakeBound()
	value, ok := projection.Get("Nope")
	assert.True(t, ok)
	assert.Equal(t, "x", value)
	value, ok = projection.Get("Verb")
	assert.True(t, ok)
	assert.Equal(t, "show", value)
	value, ok = projection.Get("positional0")
	assert.True(t, ok)
	assert.Equal(t, "stray", value)
}

func TestValue_DeferredResolvesOnce(t *testing.T) {
	calls := 0
	value := Deferred(func() string {
		calls++
		return "lazy"
	})

	assert.Equal(t, "lazy", value.Resolve())
	assert.Equal(t, "lazy", value.Resolve())
	assert.Equal(t, 1, calls)
}
