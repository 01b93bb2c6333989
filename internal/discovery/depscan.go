// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package discovery locates downstream files and candidate tests for a
// changed file. Both scans are conservative textual heuristics: false
// positives are tolerated, silently missed simple-identifier references are
// not.
// Implements: prd005-impact-report R2, R3;
//
//	docs/ARCHITECTURE § Dependency Scan.
package discovery

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Walker is the filesystem surface the scans need.
type Walker interface {
	ReadFile(path string) (string, error)
	Exists(path string) bool
	Walk(root string, fn filepath.WalkFunc) error
}

// skipDirs are directory names excluded from every walk.
var skipDirs = map[string]bool{
	".git":         true,
	"vendor":       true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"__pycache__":  true,
	"coverage":     true,
}

// sourceExts are the extensions recognized as scannable source files.
var sourceExts = map[string]bool{
	".go":  true,
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".py":  true,
}

// Identifier-quality floor for bare-name reference matching. Short and
// underscore-prefixed names match too much unrelated text as bare words, so
// below the floor a reference must be call-shaped (`name(`) to count. The
// symbol is never dropped outright: a call site of a changed symbol must
// always surface, however short its name.
const minSymbolLength = 4

// ScanDependents walks the tree rooted at root and returns every source
// file that imports sourceFile or references one of the changed symbol
// names outside that symbol's own definition. The walk honors ctx
// cancellation, skips unreadable entries, and de-duplicates results.
//
// Implements: prd005-impact-report R2.1-R2.5.
func ScanDependents(ctx context.Context, fs Walker, root, sourceFile string, symbols []string) []string {
	base := baseName(sourceFile)
	symbolRes := buildSymbolPatterns(symbols)

	seen := make(map[string]bool)
	var found []string

	_ = fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip entries we cannot stat; never abort the scan.
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() {
			if skipDirs[filepath.Base(path)] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExts[filepath.Ext(path)] || samePath(path, sourceFile) {
			return nil
		}

		content, err := fs.ReadFile(path)
		if err != nil {
			return nil
		}

		if referencesFile(content, base) || referencesSymbol(content, symbolRes) {
			if !seen[path] {
				seen[path] = true
				found = append(found, path)
			}
		}
		return nil
	})

	return found
}

// referencesFile reports whether content has an import-like line naming
// base as a path segment or module name.
func referencesFile(content, base string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "import") &&
			!strings.HasPrefix(trimmed, "from ") &&
			!strings.Contains(trimmed, "require(") {
			continue
		}
		if containsPathSegment(trimmed, base) {
			return true
		}
	}
	return false
}

// containsPathSegment reports whether line names base as a whole path
// segment or module token ("./util", "pkg/util", "from util import").
func containsPathSegment(line, base string) bool {
	for _, sep := range []string{"/" + base, "\"" + base, "'" + base, " " + base} {
		idx := strings.Index(line, sep)
		for idx >= 0 {
			end := idx + len(sep)
			if end == len(line) || !isWordChar(line[end]) {
				return true
			}
			next := strings.Index(line[idx+1:], sep)
			if next < 0 {
				break
			}
			idx = idx + 1 + next
		}
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// symbolPattern pairs a reference matcher with the definition matcher that
// disqualifies a line from counting as a reference.
type symbolPattern struct {
	ref *regexp.Regexp
	def *regexp.Regexp
}

// buildSymbolPatterns compiles matchers for each changed symbol. Names below
// the identifier-quality floor get the stricter call-shaped reference
// matcher instead of the bare-word one.
func buildSymbolPatterns(symbols []string) []symbolPattern {
	var patterns []symbolPattern
	for _, sym := range symbols {
		if sym == "" {
			continue
		}
		quoted := regexp.QuoteMeta(sym)
		ref := `\b` + quoted + `\b`
		if len(sym) < minSymbolLength || strings.HasPrefix(sym, "_") {
			ref = `\b` + quoted + `\s*\(`
		}
		patterns = append(patterns, symbolPattern{
			ref: regexp.MustCompile(ref),
			def: regexp.MustCompile(`(?:\bfunction\s+|\bclass\s+|\bdef\s+|\bfunc\s+(?:\([^)]*\)\s*)?|\b(?:const|let|var)\s+)` + quoted + `\b`),
		})
	}
	return patterns
}

// referencesSymbol reports whether any line of content mentions a changed
// symbol without being that symbol's own definition.
func referencesSymbol(content string, patterns []symbolPattern) bool {
	if len(patterns) == 0 {
		return false
	}
	for _, line := range strings.Split(content, "\n") {
		for _, p := range patterns {
			if p.ref.MatchString(line) && !p.def.MatchString(line) {
				return true
			}
		}
	}
	return false
}

// baseName returns the file name without its extension.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// samePath compares paths after cleaning; the walk and the input may spell
// the same file differently.
func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
