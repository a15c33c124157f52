package completor

import (
	"fmt"
	"sort"
	"strings"
)

const (
	sentinelAscending  = "!<"
	sentinelDescending = "!>"
)

// ParseSortDirective strips a trailing sort sentinel from the typed word.
// '!<' requests ascending-by-frequency order, '!>' descending; without a
// sentinel the order is alphabetical. The returned prefix is what remains
// for candidate filtering.
func ParseSortDirective(word string) (prefix string, directive SortDirective) {
	switch {
	case strings.HasSuffix(word, sentinelAscending):
		return strings.TrimSuffix(word, sentinelAscending), SortFrequencyAscending
	case strings.HasSuffix(word, sentinelDescending):
		return strings.TrimSuffix(word, sentinelDescending), SortFrequencyDescending
	}

	return word, SortAlphabetical
}

// Rank turns the raw candidate pool into the final ordered candidate list:
// the sort sentinel is stripped from wordToComplete, the pool is filtered to
// values starting with the remaining prefix (compared as a literal,
// case-insensitive), duplicates are grouped with occurrence counts, the
// groups are ordered per the directive, and each survivor's insertion text
// is quoted when needed. Display text and tooltip stay unquoted.
func Rank(pool []string, wordToComplete string, category CandidateCategory) []CompletionCandidate {
	prefix, directive := ParseSortDirective(wordToComplete)

	order := make([]string, 0, len(pool))
	counts := make(map[string]int, len(pool))
	for _, value := range pool {
		if !hasFoldPrefix(value, prefix) {
			continue
		}
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	switch directive {
	case SortFrequencyAscending:
		sort.SliceStable(order, func(i, j int) bool {
			if counts[order[i]] != counts[order[j]] {
				return counts[order[i]] < counts[order[j]]
			}
			return lessFold(order[i], order[j])
		})
	case SortFrequencyDescending:
		sort.SliceStable(order, func(i, j int) bool {
			if counts[order[i]] != counts[order[j]] {
				return counts[order[i]] > counts[order[j]]
			}
			return lessFold(order[i], order[j])
		})
	default:
		sort.SliceStable(order, func(i, j int) bool {
			return lessFold(order[i], order[j])
		})
	}

	candidates := make([]CompletionCandidate, 0, len(order))
	for _, value := range order {
		tooltip := value
		if directive != SortAlphabetical {
			tooltip = fmt.Sprintf("%s (seen %d)", value, counts[value])
		}
		candidates = append(candidates, CompletionCandidate{
			InsertionText: quoteIfNeeded(value),
			DisplayText:   value,
			Category:      category,
			Tooltip:       tooltip,
		})
	}

	return candidates
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
