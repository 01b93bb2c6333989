// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd004-semantic-diff R3, prd005-impact-report R1 (shared types).
package types

// ChangeSet holds the symbols whose presence or normalized signature actually
// changed between the before and after texts. Additions are deliberately
// excluded: a brand-new symbol cannot yet have broken any caller.
//
// Implements: prd004-semantic-diff R3.1-R3.4.
type ChangeSet struct {
	ChangedFunctions map[string]bool // Function names removed or signature-changed
	ChangedClasses   map[string]bool // Class names removed or signature-changed
}

// NewChangeSet returns an empty ChangeSet with initialized sets.
func NewChangeSet() ChangeSet {
	return ChangeSet{
		ChangedFunctions: make(map[string]bool),
		ChangedClasses:   make(map[string]bool),
	}
}

// Empty reports whether no symbol changed.
func (c ChangeSet) Empty() bool {
	return len(c.ChangedFunctions) == 0 && len(c.ChangedClasses) == 0
}

// Symbols returns all changed symbol names, functions first.
func (c ChangeSet) Symbols() []string {
	var names []string
	for n := range c.ChangedFunctions {
		names = append(names, n)
	}
	for n := range c.ChangedClasses {
		names = append(names, n)
	}
	return names
}

// Issue flags a concern attached to an ImpactReport.
type Issue struct {
	Type   string `json:"type"`   // Machine-readable issue kind
	Target string `json:"target"` // Symbol or file the issue refers to
}

// Issue types produced by the report builder.
const (
	IssueBreakingChange = "breaking_change"
	IssueNoTestCoverage = "no_test_coverage"
	IssueParseFailure   = "parse_failure"
)

// ImpactReport is the composed outcome of one analysis call: changed symbols,
// downstream files, candidate tests, and flagged issues. Immutable once built.
//
// Implements: prd005-impact-report R1.1-R1.5.
type ImpactReport struct {
	SourceFile      string   `json:"sourceFile"`
	Functions       []string `json:"functions"`       // Changed function and class names
	DownstreamFiles []string `json:"downstreamFiles"` // Files importing or referencing changed symbols
	Tests           []string `json:"tests"`           // Discovered candidate test files
	Issues          []Issue  `json:"issues"`
}

// ChangedLine is one line of the current text that differs from the prior
// text. The scorer operates only on these, never the whole file.
type ChangedLine struct {
	Number int    // Line number in the current text (1-based)
	Text   string // Line content without trailing newline
}
