// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

// Package nlp provides deterministic token and text normalization for the
// classifier and the recommendation pipeline.
//
// Normalization is intentionally small and fixed: Unicode NFC composition,
// the Cyrillic "ё" folded to "е", and a closed synonym table that collapses
// the common spellings of a handful of skill names into one canonical form.
// All functions are pure and idempotent.
package nlp

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// synonyms maps folded token spellings to their canonical form. The table
// covers spellings observed in real catalog data, not a general alias system.
var synonyms = map[string]string{
	"cpp":         "c++",
	"c plus plus": "c++",
	"c-плюс-плюс": "c++",
	"си":          "c",
	"js":          "javascript",
}

// NormalizeText canonicalizes free text for classification: NFC composition,
// "ё" folded to "е", surrounding whitespace trimmed. Empty input yields the
// empty string. Idempotent.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "ё", "е")
	return strings.TrimSpace(s)
}

// NormalizeToken canonicalizes a single skill token: NFC composition,
// trimming, lowercasing, "ё" folding, then a synonym-table lookup. Tokens
// without a synonym entry are returned in their folded form.
func NormalizeToken(t string) string {
	if t == "" {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(norm.NFC.String(t)))
	s = strings.ReplaceAll(s, "ё", "е")
	if canonical, ok := synonyms[s]; ok {
		return canonical
	}
	return s
}

// NormalizeList applies NormalizeToken to each entry, drops empty results and
// deduplicates while preserving first-seen order.
func NormalizeList(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		n := NormalizeToken(t)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		out = append(out, n)
		seen[n] = struct{}{}
	}
	return out
}
