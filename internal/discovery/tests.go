// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-impact-report R3 (test discovery).
package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// testDirs are directory names treated as test containers: any file inside
// them that mentions the source's base name is a candidate.
var testDirs = map[string]bool{
	"__tests__": true,
	"test":      true,
	"tests":     true,
}

// DiscoverTests locates candidate test files for sourceFile by naming
// convention and directory proximity: the file's own directory, test
// directories beneath it, and test directories at the repo root. An empty
// result is valid and means "no discovered coverage".
//
// Implements: prd005-impact-report R3.1-R3.3.
func DiscoverTests(fs Walker, root, sourceFile string) []string {
	base := baseName(sourceFile)
	dir := filepath.Dir(sourceFile)

	roots := []string{dir}
	if root != "" && filepath.Clean(root) != filepath.Clean(dir) {
		for name := range testDirs {
			candidate := filepath.Join(root, name)
			if fs.Exists(candidate) {
				roots = append(roots, candidate)
			}
		}
	}

	seen := make(map[string]bool)
	var found []string

	for _, r := range roots {
		_ = fs.Walk(r, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				name := filepath.Base(path)
				if skipDirs[name] {
					return filepath.SkipDir
				}
				return nil
			}

			if !isTestCandidate(path, base) || samePath(path, sourceFile) {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				found = append(found, path)
			}
			return nil
		})
	}

	return found
}

// isTestCandidate reports whether path names a test for base: the
// {name}.test.* / {name}.spec.* conventions, Go and Python test naming, or
// any file under a test directory that mentions base.
func isTestCandidate(path, base string) bool {
	name := filepath.Base(path)

	if strings.HasPrefix(name, base+".test.") || strings.HasPrefix(name, base+".spec.") {
		return true
	}
	if name == base+"_test.go" {
		return true
	}
	if strings.HasPrefix(name, "test_"+base+".") {
		return true
	}

	parent := filepath.Base(filepath.Dir(path))
	return testDirs[parent] && strings.Contains(name, base)
}

// IsTestFile reports whether path itself is a test file by naming
// convention. The scorer's test metric treats edits to tests as a bonus.
func IsTestFile(path string) bool {
	name := filepath.Base(path)
	if strings.Contains(name, ".test.") || strings.Contains(name, ".spec.") {
		return true
	}
	if strings.HasSuffix(name, "_test.go") || strings.HasPrefix(name, "test_") {
		return true
	}
	return testDirs[filepath.Base(filepath.Dir(path))]
}
