// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

// Package recommend ranks catalog items against a user-supplied skill set
// using one-hot cosine similarity.
//
// The pipeline is purely request-scoped: a vocabulary is derived from one
// catalog snapshot, the snapshot's items and the query are vectorized over
// it, and the items are ranked by cosine similarity with popularity as the
// tie-break. Nothing is cached between requests.
package recommend

import (
	"github.com/avoronov/skillserve/internal/catalog"
	"github.com/avoronov/skillserve/internal/nlp"
)

// Vocabulary maps canonical skill tokens to stable vector indices. Insertion
// order defines index assignment, so a vocabulary is deterministic for a
// fixed item order.
type Vocabulary map[string]int

// BuildVocab derives the token vocabulary from a snapshot's items: each
// canonical token not yet present is assigned the next sequential index.
func BuildVocab(items []catalog.Item) Vocabulary {
	vocab := make(Vocabulary)
	for _, item := range items {
		for _, token := range nlp.NormalizeList(item.Skills) {
			if _, ok := vocab[token]; !ok {
				vocab[token] = len(vocab)
			}
		}
	}
	return vocab
}
