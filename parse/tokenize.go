package parse

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnterminatedQuote is returned when a quoted span is never closed
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Tokenize splits a raw invocation line into elements with source offsets.
// Words are separated by unquoted whitespace. Single-quoted spans treat a
// doubled quote as an escaped literal quote; double-quoted spans run to the
// closing quote. A word starting with '-' followed by a letter is a
// parameter token; within a parameter token a '::' or '.' separator splits
// the word into a parameter element and an adjacent value element (the raw
// text may encode an attached Type.Member reference which downstream binding
// re-merges), while a single ':' marks an inline 'name:value' form.
func Tokenize(line string) ([]Element, error) {
	var elements []Element

	i := 0
	n := len(line)
	for i < n {
		for i < n && isArgSeparator(line[i]) {
			i++
		}
		if i >= n {
			break
		}

		start := i
		var text strings.Builder
		quoted := false
		for i < n && !isArgSeparator(line[i]) {
			switch line[i] {
			case '\'':
				quoted = true
				i++
				closed := false
				for i < n {
					if line[i] == '\'' {
						if i+1 < n && line[i+1] == '\'' {
							text.WriteByte('\'')
							i += 2
							continue
						}
						i++
						closed = true
						break
					}
					text.WriteByte(line[i])
					i++
				}
				if !closed {
					return nil, fmt.Errorf("%w at offset %d", ErrUnterminatedQuote, start)
				}
			case '"':
				quoted = true
				i++
				closed := false
				for i < n {
					if line[i] == '"' {
						i++
						closed = true
						break
					}
					text.WriteByte(line[i])
					i++
				}
				if !closed {
					return nil, fmt.Errorf("%w at offset %d", ErrUnterminatedQuote, start)
				}
			default:
				text.WriteByte(line[i])
				i++
			}
		}

		elements = append(elements, classify(text.String(), start, i, quoted)...)
	}

	return elements, nil
}

// classify turns one scanned word into its element form. A parameter word
// holding a member separator yields two adjacent elements so that offset
// adjacency survives for the attached-member merge.
func classify(text string, start, end int, quoted bool) []Element {
	if quoted || !isParameterWord(text) {
		return []Element{{Kind: KindValue, Text: text, Start: start, End: end}}
	}

	name := text[1:]
	if idx := strings.Index(name, "::"); idx > 0 {
		split := start + 1 + idx
		return []Element{
			{Kind: KindParameter, Text: text[:1+idx], Name: name[:idx], Start: start, End: split},
			{Kind: KindValue, Text: name[idx:], Start: split, End: end},
		}
	}
	if idx := strings.IndexByte(name, '.'); idx > 0 {
		split := start + 1 + idx
		return []Element{
			{Kind: KindParameter, Text: text[:1+idx], Name: name[:idx], Start: start, End: split},
			{Kind: KindValue, Text: name[idx:], Start: split, End: end},
		}
	}
	if idx := strings.IndexByte(name, ':'); idx >= 0 {
		return []Element{{
			Kind:        KindParameter,
			Text:        text,
			Name:        name[:idx],
			InlineValue: name[idx+1:],
			HasInline:   true,
			Start:       start,
			End:         end,
		}}
	}

	return []Element{{Kind: KindParameter, Text: text, Name: name, Start: start, End: end}}
}

func isParameterWord(text string) bool {
	if len(text) < 2 || text[0] != '-' {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[1:])

	return unicode.IsLetter(r)
}

func isArgSeparator(c byte) bool {
	return c == ' ' || c == '\t'
}
