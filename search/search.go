// Package search implements ranked substring and fuzzy matching over
// arbitrary item slices. Items are projected to a comparable string by a
// caller-supplied key function; the package never inspects items beyond
// that string.
package search

import (
	"sort"
	"strings"
)

// Mode selects the matching algorithm.
type Mode string

const (
	Substring Mode = "substring"
	Fuzzy     Mode = "fuzzy"
)

const (
	DefaultLimit = 10
	// DefaultThreshold is the minimum similarity a fuzzy match must reach.
	DefaultThreshold = 0.6
)

// Options tune Search. Zero values fall back to defaults
// (Substring mode, limit 10, threshold 0.6).
type Options struct {
	Mode      Mode
	Limit     int
	Threshold float64 // fuzzy only; ignored for substring
}

// Search dispatches to SubstringSearch or FuzzySearch by opts.Mode.
func Search[T any](items []T, query string, key func(T) string, opts Options) []T {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if opts.Mode == Fuzzy {
		threshold := opts.Threshold
		if threshold <= 0 {
			threshold = DefaultThreshold
		}
		return FuzzySearch(items, query, key, limit, threshold)
	}
	return SubstringSearch(items, query, key, limit)
}

// SubstringSearch ranks case-insensitively in three tiers: exact matches
// first, then prefix matches, then plain substring matches. Each tier keeps
// the input order. An empty query matches nothing.
func SubstringSearch[T any](items []T, query string, key func(T) string, limit int) []T {
	if query == "" {
		return []T{}
	}
	q := strings.ToLower(query)

	var exact, prefix, contains []T
	for _, item := range items {
		k := strings.ToLower(key(item))
		switch {
		case k == q:
			exact = append(exact, item)
		case strings.HasPrefix(k, q):
			prefix = append(prefix, item)
		case strings.Contains(k, q):
			contains = append(contains, item)
		}
	}

	out := make([]T, 0, len(exact)+len(prefix)+len(contains))
	out = append(out, exact...)
	out = append(out, prefix...)
	out = append(out, contains...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FuzzySearch ranks by similarity score in [0,1], descending, keeping input
// order for equal scores. Substring hits are pinned above every
// edit-distance score (exact 1.0, prefix 0.95, contains 0.9) so fuzzy noise
// never buries an obvious match. Items scoring below threshold are dropped.
// An empty query matches nothing.
func FuzzySearch[T any](items []T, query string, key func(T) string, limit int, threshold float64) []T {
	if query == "" {
		return []T{}
	}
	q := strings.ToLower(query)

	type scored struct {
		item  T
		score float64
	}
	var matches []scored
	for _, item := range items {
		k := strings.ToLower(key(item))
		s := score(q, k)
		if s < threshold {
			continue
		}
		matches = append(matches, scored{item: item, score: s})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}

// score rates how well query matches key; both must already be lower-cased.
func score(query, key string) float64 {
	switch {
	case key == query:
		return 1.0
	case strings.HasPrefix(key, query):
		return 0.95
	case strings.Contains(key, query):
		return 0.9
	}

	best := levenshteinSimilarity(query, key)

	// a short query against a long multi-word name ("oden" vs
	// "stockholm odenplan") scores badly as a whole string; rate the query
	// against each word too and keep the best
	if len([]rune(key)) > 2*len([]rune(query)) {
		for _, token := range splitTokens(key) {
			if s := levenshteinSimilarity(query, token); s > best {
				best = s
			}
		}
	}
	return best
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-'
	})
}
