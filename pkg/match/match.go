// Package match maps AUR and Flatpak package identifiers onto official
// repository package names. Identifiers rarely agree across ecosystems
// (org.mozilla.firefox vs firefox, spotify-bin vs spotify), so candidates
// are found by normalization, substring search and fuzzy ranking.
package match

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Kind says how a candidate was found. Exact beats substring beats fuzzy.
type Kind int

const (
	Exact Kind = iota
	Substring
	Fuzzy
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Substring:
		return "substring"
	default:
		return "fuzzy"
	}
}

// Match is one candidate repository package for an identifier.
type Match struct {
	// Name is the original repository package name.
	Name string
	Kind Kind
	// Distance is the Levenshtein distance for fuzzy matches, 0 otherwise.
	Distance int
}

// DefaultLimit caps how many candidates Rank returns.
const DefaultLimit = 5

var strippedSuffixes = []string{"-bin", "-git", "-appimage", "-nightly"}

// Normalize reduces a package identifier to a comparable form: lowercase,
// flatpak reverse-DNS prefix dropped, packaging suffixes stripped, and
// separator characters unified.
func Normalize(id string) string {
	s := strings.ToLower(strings.TrimSpace(id))

	// Flatpak IDs are reverse-DNS; the application name is the last segment.
	if i := strings.LastIndex(s, "."); i >= 0 && i < len(s)-1 {
		s = s[i+1:]
	}

	s = strings.ReplaceAll(s, "_", "-")

	for _, suffix := range strippedSuffixes {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}

	return s
}

// Rank returns up to limit candidate repository names for the identifier,
// best first. An exact normalized match short-circuits everything else.
// limit <= 0 means DefaultLimit.
func Rank(id string, names []string, limit int) []Match {
	if limit <= 0 {
		limit = DefaultLimit
	}

	needle := Normalize(id)
	if needle == "" {
		return nil
	}

	normalized := make([]string, len(names))
	for i, name := range names {
		normalized[i] = Normalize(name)
	}

	// Exact normalized hits win outright.
	var exact []Match
	for i, norm := range normalized {
		if norm == needle {
			exact = append(exact, Match{Name: names[i], Kind: Exact})
		}
	}
	if len(exact) > 0 {
		if len(exact) > limit {
			exact = exact[:limit]
		}
		return exact
	}

	seen := make(map[string]bool)
	var matches []Match

	// Substring pass, both directions.
	for i, norm := range normalized {
		if strings.Contains(norm, needle) || strings.Contains(needle, norm) {
			if !seen[names[i]] {
				seen[names[i]] = true
				matches = append(matches, Match{Name: names[i], Kind: Substring})
			}
		}
	}

	// Fuzzy pass over the normalized corpus.
	ranks := fuzzy.RankFindNormalizedFold(needle, normalized)
	sort.Sort(ranks)
	for _, rank := range ranks {
		name := names[rank.OriginalIndex]
		if seen[name] {
			continue
		}
		seen[name] = true
		matches = append(matches, Match{Name: name, Kind: Fuzzy, Distance: rank.Distance})
	}

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Best returns the single best candidate, or false when there is none.
func Best(id string, names []string) (Match, bool) {
	matches := Rank(id, names, 1)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}
