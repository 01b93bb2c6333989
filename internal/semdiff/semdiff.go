// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package semdiff computes which symbols actually changed between two
// versions of a file: removed declarations and declarations whose
// normalized signature differs. Body-only edits are not changes here; the
// question is "did the contract change", not "did anything change".
// Implements: prd004-semantic-diff R1, R2, R3;
//
//	docs/ARCHITECTURE § Semantic Diff.
package semdiff

import (
	"github.com/petar-djukic/go-impact/internal/inventory"
	"github.com/petar-djukic/go-impact/pkg/types"
)

// Compute builds the ChangeSet from before/after declaration lists.
//
//   - Present in before, absent in after: changed (removed).
//   - Present in both: changed iff the joined normalized signatures of all
//     same-named declarations differ.
//   - Present only in after: ignored. New code cannot yet have broken an
//     existing caller.
//
// Implements: prd004-semantic-diff R2.1-R2.4.
func Compute(before, after []types.Declaration) types.ChangeSet {
	cs := types.NewChangeSet()

	afterNames := make(map[string]bool, len(after))
	for _, d := range after {
		afterNames[d.Name] = true
	}

	done := make(map[string]bool, len(before))
	for _, d := range before {
		if done[d.Name] {
			continue
		}
		done[d.Name] = true

		if afterNames[d.Name] {
			if inventory.SignaturesFor(d.Name, before) == inventory.SignaturesFor(d.Name, after) {
				continue
			}
		}

		if d.Kind == types.DeclClass {
			cs.ChangedClasses[d.Name] = true
		} else {
			cs.ChangedFunctions[d.Name] = true
		}
	}

	return cs
}
