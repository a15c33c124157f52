// Copyright 2016-2024, Rohn Edwards. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package completor implements an interactive command-line completion
// engine. Given a partially typed invocation and a cursor offset it re-binds
// the typed tokens against the target command's declared parameters,
// determines which parameter the cursor sits on, asks a pluggable candidate
// provider for the raw value pool, and returns a ranked, quoted,
// deduplicated candidate list.
//
// The engine recognizes three completion targets:
//
//	Command - the cursor is on the leading command token
//	ParameterName - the cursor is on a '-Name' token
//	ParameterValue - the cursor is on a value, an inline 'name:value' fragment, or follows a parameter awaiting its value
//
// Attached 'Owner.Member' and 'Owner::Member' parameters are resolved
// against a TypeRegistry, including the case where the tokenizer split the
// spelling into two adjacent tokens. Every anomaly degrades to fewer
// candidates plus a recorded diagnostic; Complete never fails an
// interactive session.
package completor

import (
	"context"
	"fmt"

	"github.com/rohnedwards/completor/parse"
)

// CommandPoolKey is the ParameterInUse name of a PoolRequest asking for
// command name candidates rather than values of a bound parameter
const CommandPoolKey = "command"

// NewEngine creates an Engine from option functions. Configuration errors
// abort construction; an Engine without a metadata source or provider still
// works, degrading to unfiltered binding and empty pools.
func NewEngine(configs ...ConfigureEngineFunc) (*Engine, error) {
	engine := &Engine{providerTimeout: DefaultProviderTimeout}
	var err error
	for _, config := range configs {
		config(engine, &err)
		if err != nil {
			return nil, err
		}
	}

	return engine, nil
}

// Complete runs one completion request for line with the cursor at
// cursorOffset (a byte offset into line). The returned Result always has a
// candidate list, possibly empty; anomalies are reported through
// Result.Diagnostics. The error return is reserved for a canceled ctx.
func (e *Engine) Complete(ctx context.Context, line string, cursorOffset int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{}
	elements, err := parse.Tokenize(line)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, err)
		e.debugf("tokenize failed: %v", err)
		return res, nil
	}

	if len(elements) == 0 || elements[0].Contains(cursorOffset) {
		return e.completeCommandName(ctx, elements, res)
	}

	command := elements[0].Text
	descriptors, err := e.describeCommand(command)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, fmt.Errorf(FmtErrorWithString, ErrMetadataUnavailable, command))
		e.debugf("metadata unavailable for %s: %v", command, err)
	}

	binding := bindWithOptions(elements[1:], cursorOffset, descriptors, e.registry, e.listFunc)
	res.Binding = binding
	res.Diagnostics = append(res.Diagnostics, binding.Diagnostics...)

	el, onElement := elementAt(elements[1:], cursorOffset)
	switch {
	case !onElement:
		e.completeFreshWord(ctx, command, elements[1:], descriptors, binding, res)
	case el.IsParameter() && el.HasInline:
		e.completeInlineValue(ctx, command, el, binding, res)
	case el.IsParameter():
		e.completeParameterName(el.Name, binding, res)
	default:
		word := el.Text
		e.completeValue(ctx, command, word, binding, res)
	}

	return res, nil
}

func (e *Engine) describeCommand(name string) ([]ParameterDescriptor, error) {
	if e.meta == nil {
		return nil, nil
	}

	return e.meta.DescribeCommand(name)
}

// elementAt returns the element containing pos. Extents are inclusive on
// both boundaries, so a cursor sitting exactly between two adjacent
// elements is contained by both; the scan lets the later element win.
func elementAt(elements []parse.Element, pos int) (parse.Element, bool) {
	var found parse.Element
	var ok bool
	for _, el := range elements {
		if el.Contains(pos) {
			found = el
			ok = true
		}
	}

	return found, ok
}

// completeCommandName serves the leading command token. The provider is
// asked for command names through a request keyed by CommandPoolKey.
func (e *Engine) completeCommandName(ctx context.Context, elements []parse.Element, res *Result) (*Result, error) {
	word := ""
	if len(elements) > 0 {
		word = elements[0].Text
	}

	pool, err := e.collectPool(ctx, PoolRequest{
		ParameterInUse: CursorParameter{Name: CommandPoolKey},
	})
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, err)
		e.debugf("command pool failed: %v", err)
		return res, nil
	}
	res.Candidates = Rank(pool, word, CategoryCommand)

	return res, nil
}

// completeFreshWord handles a cursor past every element, i.e. the user
// typed a separator and is starting a new word. A trailing parameter still
// waiting for its value yields value completion with an empty word;
// anything else yields parameter name suggestions.
func (e *Engine) completeFreshWord(ctx context.Context, command string, elements []parse.Element, descriptors []ParameterDescriptor, binding *BindingResult, res *Result) {
	if name, ok := trailingValueParameter(elements, descriptors, e.registry); ok {
		binding.ParameterInUse = &CursorParameter{Name: name}
		e.completeValue(ctx, command, "", binding, res)
		return
	}

	e.completeParameterName("", binding, res)
}

// trailingValueParameter reports whether the invocation ends in a parameter
// that consumes a value and has not received one. The trailing spelling may
// be a plain '-Name' token or a split attached pair '-Owner' + '.Member'.
func trailingValueParameter(elements []parse.Element, descriptors []ParameterDescriptor, registry *TypeRegistry) (string, bool) {
	if len(elements) == 0 {
		return "", false
	}

	last := elements[len(elements)-1]
	if last.Kind == parse.KindValue && len(elements) > 1 {
		prev := elements[len(elements)-2]
		if prev.IsParameter() && !prev.HasInline && last.Start == prev.End {
			match, _, err := TryMergeAttachedMember(prev.Name, &last, registry)
			if err == nil && match != nil {
				return match.ParameterName(), true
			}
		}
		return "", false
	}

	if !last.IsParameter() || last.HasInline {
		return "", false
	}

	matches := matchAvailable(descriptors, last.Name)
	if len(matches) == 1 && !matches[0].IsSwitch {
		return matches[0].Name, true
	}

	match, _, err := TryMergeAttachedMember(last.Name, nil, registry)
	if err == nil && match != nil {
		return match.ParameterName(), true
	}

	return "", false
}

// completeValue asks the provider for the pool of the parameter in use and
// ranks it against the typed word. Without a resolved parameter in use the
// request still goes out keyed by the positional slot.
func (e *Engine) completeValue(ctx context.Context, command, word string, binding *BindingResult, res *Result) {
	target := binding.ParameterInUse
	if target == nil {
		return
	}

	pool, err := e.collectPool(ctx, PoolRequest{
		Command:        command,
		ParameterInUse: *target,
		FakeBound:      binding.FakeBound(),
	})
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, err)
		e.debugf("pool for %s failed: %v", target.Key(), err)
		return
	}
	e.debugf("pool for %s: %d values", target.Key(), len(pool))
	res.Candidates = Rank(pool, word, CategoryParameterValue)
}

// completeInlineValue completes the value fragment of a 'name:value' token.
// Candidates are ranked against the fragment alone, then the '-name:'
// spelling is re-attached to each insertion so the whole token is replaced.
func (e *Engine) completeInlineValue(ctx context.Context, command string, el parse.Element, binding *BindingResult, res *Result) {
	if binding.ParameterInUse == nil {
		binding.ParameterInUse = &CursorParameter{Name: el.Name}
	}
	e.completeValue(ctx, command, el.InlineValue, binding, res)
	for i := range res.Candidates {
		res.Candidates[i].InsertionText = "-" + el.Name + ":" + res.Candidates[i].InsertionText
	}
}

// completeParameterName suggests '-Name' spellings for the descriptors not
// yet consumed by the binding, plus attached member spellings for every
// registered owner type.
func (e *Engine) completeParameterName(typed string, binding *BindingResult, res *Result) {
	var pool []string
	for _, d := range binding.Unmatched {
		pool = append(pool, "-"+d.Name)
	}
	if e.registry != nil {
		for _, owner := range e.registry.OwnerNames() {
			ownerType, ok := e.registry.Lookup(owner)
			if !ok {
				continue
			}
			for _, member := range ownerType.Members {
				pool = append(pool, "-"+owner+"."+member.Name)
			}
		}
	}

	word := typed
	if word != "" {
		word = "-" + word
	}
	res.Candidates = Rank(pool, word, CategoryParameterName)
}

func (e *Engine) debugf(format string, args ...any) {
	if e.debug == nil {
		return
	}
	fmt.Fprintf(e.debug, format+"\n", args...)
}
