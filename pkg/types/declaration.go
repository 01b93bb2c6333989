// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-structural-inventory R1 (shared types).
package types

// DeclKind identifies the category of a collected declaration.
type DeclKind int

const (
	DeclFunction DeclKind = iota // Named function (declaration, expression, or arrow)
	DeclClass                    // Named class or type declaration
)

// String returns the human-readable name of the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	default:
		return "unknown"
	}
}

// Declaration is a named, located declaration collected from a source text,
// with a whitespace- and comment-insensitive signature. Ephemeral: used only
// within one diff computation.
//
// Implements: prd003-structural-inventory R1.1-R1.4.
type Declaration struct {
	Name                string   // Declared name
	Kind                DeclKind // Function or class
	Line                int      // Line number (1-based)
	NormalizedSignature string   // Canonical parameter list + return annotation
}

// ParseStatus reports how an inventory was obtained. A failed parse is a
// distinct outcome, never silently treated as "no declarations".
//
// Implements: prd003-structural-inventory R4.1-R4.3.
type ParseStatus int

const (
	ParseOK       ParseStatus = iota // Full AST parse succeeded
	ParseFallback                    // Line-pattern heuristics were used
	ParseFailed                      // The parser could not build an AST
)

// String returns the machine-readable name of the parse status.
func (s ParseStatus) String() string {
	switch s {
	case ParseOK:
		return "ok"
	case ParseFallback:
		return "fallback"
	default:
		return "failed"
	}
}
