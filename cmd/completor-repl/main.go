// Command completor-repl is an interactive demo of the completion engine.
// It serves a small static catalog of UI-element commands; press tab to see
// parameter, value and attached member completion, including bidirectional
// narrowing between -Name and -Kind.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"golang.org/x/term"

	"github.com/rohnedwards/completor"
	"github.com/rohnedwards/completor/parse"
	"github.com/rohnedwards/completor/types"
)

func position(p int) *int { return &p }

var commandTable = map[string][]completor.ParameterDescriptor{
	"New-Control": {
		{Name: "Name", Position: position(0), TypeOf: types.String},
		{Name: "Kind", Position: position(1), TypeOf: types.String},
		{Name: "Width", TypeOf: types.Int},
		{Name: "Height", TypeOf: types.Int},
		{Name: "Visible", IsSwitch: true, TypeOf: types.Bool},
	},
	"Set-Control": {
		{Name: "Name", Aliases: []string{"Id"}, Position: position(0), TypeOf: types.String},
		{Name: "Verb", TypeOf: types.String},
		{Name: "Verbose", IsSwitch: true, TypeOf: types.Bool},
	},
	"Remove-Control": {
		{Name: "Name", Position: position(0), TypeOf: types.String},
		{Name: "Force", IsSwitch: true, TypeOf: types.Bool},
	},
}

// catalog is the demo's "live metadata": known controls with their kind.
// Completing -Name narrows by an already-typed -Kind and vice versa.
var catalog = []struct {
	name string
	kind string
}{
	{"HeaderLabel", "Label"},
	{"FooterLabel", "Label"},
	{"OkButton", "Button"},
	{"CancelButton", "Button"},
	{"SearchBox", "TextBox"},
	{"MainGrid", "Grid"},
}

func commandNames() []string {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}

	return names
}

func describe(name string) ([]completor.ParameterDescriptor, error) {
	descriptors, ok := commandTable[name]
	if !ok {
		return nil, fmt.Errorf("no such command: %s", name)
	}

	return descriptors, nil
}

func pool(_ context.Context, req completor.PoolRequest) ([]string, error) {
	if req.ParameterInUse.Name == completor.CommandPoolKey {
		return commandNames(), nil
	}

	boundName, _ := req.FakeBound.Get("Name")
	boundKind, _ := req.FakeBound.Get("Kind")

	switch req.ParameterInUse.Key() {
	case "Name", "positional0":
		var names []string
		for _, c := range catalog {
			if boundKind != "" && !strings.EqualFold(c.kind, boundKind) {
				continue
			}
			names = append(names, c.name)
		}
		return names, nil
	case "Kind", "positional1":
		var kinds []string
		for _, c := range catalog {
			if boundName != "" && !strings.EqualFold(c.name, boundName) {
				continue
			}
			kinds = append(kinds, c.kind)
		}
		return kinds, nil
	case "Width", "Height", "Grid.Row", "Grid.Column":
		return []string{"0", "1", "2", "4", "8"}, nil
	case "Verb":
		return []string{"Show", "Hide", "Move"}, nil
	default:
		return nil, nil
	}
}

func buildRegistry() *completor.TypeRegistry {
	registry := completor.NewTypeRegistry()
	registry.RegisterType(completor.OwnerType{
		Name: "Grid",
		Members: []completor.Member{
			{Name: "Row", Kind: completor.Property, TypeOf: types.Int},
			{Name: "Column", Kind: completor.Property, TypeOf: types.Int},
			{Name: "Loaded", Kind: completor.Event, TypeOf: types.String},
		},
	}, "g")

	return registry
}

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "completor-repl requires an interactive terminal")
		os.Exit(1)
	}

	engine, err := completor.NewEngine(
		completor.WithMetadataSource(completor.MetadataSourceFunc(describe)),
		completor.WithTypeRegistry(buildRegistry()),
		completor.WithProvider(pool),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("completor demo - tab completes, 'quit' exits")
	for {
		in := prompt.Input("> ", completer(engine),
			prompt.OptionTitle("completor"),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		)
		if in == "quit" || in == "exit" {
			return
		}
		execute(in)
	}
}

func completer(engine *completor.Engine) func(prompt.Document) []prompt.Suggest {
	return func(d prompt.Document) []prompt.Suggest {
		before := d.TextBeforeCursor()
		res, err := engine.Complete(context.Background(), d.Text, len(before))
		if err != nil {
			return nil
		}

		suggestions := make([]prompt.Suggest, 0, len(res.Candidates))
		for _, c := range res.Candidates {
			suggestions = append(suggestions, prompt.Suggest{
				Text:        c.InsertionText,
				Description: c.Tooltip,
			})
		}

		return suggestions
	}
}

// execute shows what the binder made of the typed line
func execute(line string) {
	elements, err := parse.Tokenize(line)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}
	if len(elements) == 0 {
		return
	}

	descriptors, err := describe(elements[0].Text)
	if err != nil {
		fmt.Println(err)
		return
	}

	binding := completor.Bind(elements[1:], len(line), descriptors, buildRegistry())
	for pair := binding.Named.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Printf("  %s = %s\n", pair.Key, pair.Value.Resolve())
	}
	for pair := binding.UnknownNamed.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Printf("  %s = %s (unknown)\n", pair.Key, pair.Value.Resolve())
	}
	for _, m := range binding.Attached {
		fmt.Printf("  %s (%s) = %v\n", m.ParameterName(), m.Kind, m.CoercedValue)
	}
	for _, v := range binding.UnknownPositional {
		fmt.Printf("  positional %s\n", v.Resolve())
	}
	for _, diag := range binding.Diagnostics {
		fmt.Println("  !", diag)
	}
}
