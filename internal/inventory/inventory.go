// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package inventory parses a source text into a flat list of named, located
// declarations with normalized signatures.
// Implements: prd003-structural-inventory R1, R2, R3, R4;
//
//	docs/ARCHITECTURE § Structural Inventory.
package inventory

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// Result is a collected inventory plus how it was obtained. A failed parse
// carries an empty declaration list, never a fabricated one.
type Result struct {
	Decls  []types.Declaration
	Status types.ParseStatus
}

// Collect parses text into declarations. Go files use the standard library
// AST; JavaScript, TypeScript, and Python use tree-sitter; everything else
// falls back to line-pattern heuristics.
//
// Implements: prd003-structural-inventory R1.1-R1.5.
func Collect(ctx context.Context, path, text string) Result {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".go":
		return collectGo(path, text)
	case ".js", ".jsx", ".ts", ".tsx", ".py":
		return collectTreeSitter(ctx, ext, text)
	default:
		return collectFallback(text)
	}
}

// SignaturesFor returns the sorted, joined normalized signatures of every
// declaration named name. Joining tolerates multiple same-named
// overload-like definitions in one file: the comparison sees all of them.
//
// Implements: prd004-semantic-diff R2.2.
func SignaturesFor(name string, decls []types.Declaration) string {
	var sigs []string
	for _, d := range decls {
		if d.Name == name {
			sigs = append(sigs, d.NormalizedSignature)
		}
	}
	// Insertion sort; signature lists are tiny.
	for i := 1; i < len(sigs); i++ {
		for j := i; j > 0 && sigs[j] < sigs[j-1]; j-- {
			sigs[j], sigs[j-1] = sigs[j-1], sigs[j]
		}
	}
	return strings.Join(sigs, "\n")
}

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	hashCommentRe  = regexp.MustCompile(`#[^\n]*`)
)

// normalizeSignature reduces a raw signature fragment to a whitespace- and
// comment-insensitive canonical string: comments stripped, whitespace runs
// collapsed to single spaces, and spaces adjacent to punctuation removed.
// hashComments additionally strips #-comments (Python sources).
//
// Implements: prd003-structural-inventory R2.1-R2.3.
func normalizeSignature(raw string, hashComments bool) string {
	s := blockCommentRe.ReplaceAllString(raw, " ")
	s = lineCommentRe.ReplaceAllString(s, " ")
	if hashComments {
		s = hashCommentRe.ReplaceAllString(s, " ")
	}

	s = collapseWhitespace(s)
	return stripPunctSpaces(s)
}

// collapseWhitespace replaces runs of whitespace (including newlines) with a
// single space and trims the ends.
func collapseWhitespace(s string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
		} else {
			b.WriteRune(r)
			inSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}

// punctuation around which incidental spaces carry no meaning.
const sigPunct = "(),:;<>[]{}=|&*"

// stripPunctSpaces removes single spaces that sit next to signature
// punctuation, so "f( a : number )" and "f(a: number)" compare equal.
func stripPunctSpaces(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == ' ' {
			prevPunct := i > 0 && strings.ContainsRune(sigPunct, runes[i-1])
			nextPunct := i+1 < len(runes) && strings.ContainsRune(sigPunct, runes[i+1])
			if prevPunct || nextPunct {
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

var identHeadRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*\??`)

// eraseParamNames rewrites the outermost parameter list of a normalized
// function signature so that renaming a parameter does not register as a
// signature change: annotated parameters keep only their annotation (plus
// optionality and rest markers), unannotated ones keep their position as "_".
//
// Implements: prd003-structural-inventory R2.4.
func eraseParamNames(sig string) string {
	open := strings.IndexByte(sig, '(')
	if open < 0 {
		return sig
	}

	depth := 0
	end := -1
	for i := open; i < len(sig) && end < 0; i++ {
		switch sig[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
	}
	if end < 0 {
		return sig
	}

	params := splitTopLevel(sig[open+1 : end])
	for i, p := range params {
		params[i] = eraseParamName(p)
	}
	return sig[:open+1] + strings.Join(params, ",") + sig[end:]
}

func eraseParamName(p string) string {
	prefix := ""
	if strings.HasPrefix(p, "...") {
		prefix = "..."
		p = p[3:]
	}
	if p == "" {
		return prefix
	}

	if idx := topLevelColon(p); idx >= 0 {
		opt := ""
		if p[idx-1] == '?' {
			opt = "?"
		}
		return prefix + opt + p[idx+1:]
	}
	return prefix + identHeadRe.ReplaceAllString(p, "_")
}

// splitTopLevel splits s on commas that sit outside any bracket nesting.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// topLevelColon returns the index of the first colon outside any bracket
// nesting, or -1. The colon must follow at least one character so the
// optionality check behind it stays in bounds.
func topLevelColon(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 && i > 0 {
				return i
			}
		}
	}
	return -1
}

// Line-pattern heuristics for languages without a full parser available.
//
// Implements: prd003-structural-inventory R3.1-R3.3.
var fallbackPatterns = []struct {
	re   *regexp.Regexp
	kind types.DeclKind
}{
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)\s*(\(.*)$`), types.DeclFunction},
	{regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*(\(.*)$`), types.DeclFunction},
	{regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)\s*(\(.*)$`), types.DeclFunction},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*((?:async\s*)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>.*)$`), types.DeclFunction},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)(.*)$`), types.DeclClass},
}

// collectFallback scans line by line for declaration-shaped patterns.
func collectFallback(text string) Result {
	var decls []types.Declaration

	for i, line := range strings.Split(text, "\n") {
		for _, p := range fallbackPatterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			sig := normalizeSignature(strings.TrimSuffix(strings.TrimSpace(m[2]), "{"), false)
			if p.kind == types.DeclFunction {
				sig = eraseParamNames(sig)
			}
			decls = append(decls, types.Declaration{
				Name:                m[1],
				Kind:                p.kind,
				Line:                i + 1,
				NormalizedSignature: sig,
			})
			break
		}
	}

	return Result{Decls: decls, Status: types.ParseFallback}
}
