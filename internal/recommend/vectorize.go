// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package recommend

import (
	"github.com/avoronov/skillserve/internal/catalog"
	"github.com/avoronov/skillserve/internal/nlp"
)

// itemHints are hint-expansion rules applied to catalog items: when the key
// token is present, the associated token's dimension is also set, if it
// exists in the vocabulary. Covers the beginner electronics pairing observed
// in real catalog data.
var itemHints = map[string]string{
	"arduino": "c++",
}

// queryHints extend itemHints with query-only phrasing variants: competition
// programming terms imply the same language skill.
var queryHints = map[string]string{
	"arduino":                 "c++",
	"олимпиадная информатика": "c++",
	"codeforces":              "c++",
}

// oneHot builds a one-hot vector over vocab from canonical tokens, applying
// the given hint rules after the base assignment.
func oneHot(tokens []string, vocab Vocabulary, hints map[string]string) []float64 {
	v := make([]float64, len(vocab))
	for _, token := range tokens {
		if idx, ok := vocab[token]; ok {
			v[idx] = 1
		}
		if implied, ok := hints[token]; ok {
			if idx, ok := vocab[implied]; ok {
				v[idx] = 1
			}
		}
	}
	return v
}

// VectorizeItem converts one catalog item's skill list into a one-hot vector
// over vocab, with item hint expansion applied.
func VectorizeItem(item catalog.Item, vocab Vocabulary) []float64 {
	return oneHot(nlp.NormalizeList(item.Skills), vocab, itemHints)
}

// QueryVector converts the caller-supplied skill list into a one-hot vector
// over vocab, with the extended query hint rules applied.
func QueryVector(skills []string, vocab Vocabulary) []float64 {
	return oneHot(nlp.NormalizeList(skills), vocab, queryHints)
}

// VectorizeAll vectorizes every item of a snapshot. Row i of the returned
// matrix corresponds to items[i]; ids and popularities are parallel to the
// rows for later tie-break use.
func VectorizeAll(items []catalog.Item, vocab Vocabulary) (matrix [][]float64, ids []int64, popularities []float64) {
	matrix = make([][]float64, len(items))
	ids = make([]int64, len(items))
	popularities = make([]float64, len(items))
	for i, item := range items {
		matrix[i] = VectorizeItem(item, vocab)
		ids[i] = item.ID
		popularities[i] = item.Popularity
	}
	return matrix, ids, popularities
}
