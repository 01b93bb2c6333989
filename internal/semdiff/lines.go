// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd004-semantic-diff R4 (changed-line set).
package semdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// LineDelta is the line-level difference between a prior and current text.
type LineDelta struct {
	Changed []types.ChangedLine // Current-text lines that are new or modified
	Added   int                 // Lines present only in the current text
	Removed int                 // Lines present only in the prior text
}

// ChangedLines computes the changed-line set of current relative to prior
// using a line-mode diff. When prior is empty every line counts as changed.
func ChangedLines(prior, current string) LineDelta {
	if prior == current {
		return LineDelta{}
	}
	if prior == "" {
		return allChanged(current)
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(prior, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var delta LineDelta
	line := 0 // Last consumed line number of the current text.

	for _, d := range diffs {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			line += n
		case diffmatchpatch.DiffDelete:
			delta.Removed += n
		case diffmatchpatch.DiffInsert:
			for i, text := range splitLines(d.Text) {
				delta.Changed = append(delta.Changed, types.ChangedLine{
					Number: line + i + 1,
					Text:   text,
				})
			}
			line += n
			delta.Added += n
		}
	}

	return delta
}

// allChanged marks every line of text as changed.
func allChanged(text string) LineDelta {
	lines := splitLines(text)
	delta := LineDelta{Added: len(lines)}
	for i, l := range lines {
		delta.Changed = append(delta.Changed, types.ChangedLine{Number: i + 1, Text: l})
	}
	return delta
}

// splitLines splits a diff segment into lines without trailing newlines,
// dropping the empty remainder after a terminal newline.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// countLines counts the lines in a diff segment, treating a trailing
// fragment without a newline as one line.
func countLines(s string) int {
	return len(splitLines(s))
}
