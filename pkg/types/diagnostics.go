// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd007-collaborators R3 (shared types).
package types

// Severity classifies an externally supplied diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// String returns the human-readable name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	default:
		return "hint"
	}
}

// Diagnostic is one finding reported by an external static-analysis or
// compiler integration. The engine consumes these as input data only; it
// never produces them.
//
// Implements: prd007-collaborators R3.1-R3.2.
type Diagnostic struct {
	StartLine int      // First line of the affected range (1-based)
	EndLine   int      // Last line of the affected range (1-based)
	Severity  Severity // Error, warning, information, or hint
	Message   string   // Diagnostic text
}
