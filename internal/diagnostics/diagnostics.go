// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package diagnostics defines the external diagnostics collaborator and a
// text-format provider that parses compiler-style output lines.
// Implements: prd007-collaborators R3;
//
//	docs/ARCHITECTURE § Diagnostics Input.
package diagnostics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// Provider supplies per-file diagnostics from an external static-analysis or
// compiler integration. The engine treats these purely as input data.
type Provider interface {
	// DiagnosticsFor returns the live diagnostics for the given file path.
	// An empty slice means no known findings.
	DiagnosticsFor(path string) []types.Diagnostic
}

// None is a Provider that reports no diagnostics.
type None struct{}

// DiagnosticsFor always returns nil.
func (None) DiagnosticsFor(string) []types.Diagnostic { return nil }

// lineRegex matches compiler-style diagnostic lines:
// file.ts:10:5: error message
// file.ts:10: error message
var lineRegex = regexp.MustCompile(`^(.+?):(\d+)(?::(\d+))?:\s*(.+)$`)

// Static is a Provider backed by pre-parsed diagnostics keyed by file path.
type Static struct {
	byFile map[string][]types.Diagnostic
}

// DiagnosticsFor returns the diagnostics recorded for path, matching on the
// full path or a relative spelling of it.
func (s *Static) DiagnosticsFor(path string) []types.Diagnostic {
	if d, ok := s.byFile[path]; ok {
		return d
	}
	for file, d := range s.byFile {
		if pathSuffix(path, file) || pathSuffix(file, path) {
			return d
		}
	}
	return nil
}

// pathSuffix reports whether s ends with suffix at a path-separator
// boundary: "src/util.ts" matches "/repo/src/util.ts" but not
// "my_util.ts".
func pathSuffix(s, suffix string) bool {
	if !strings.HasSuffix(s, suffix) {
		return false
	}
	if len(s) == len(suffix) {
		return true
	}
	sep := s[len(s)-len(suffix)-1]
	return sep == '/' || sep == '\\'
}

// ParseText builds a Static provider from compiler-style output, one
// diagnostic per line. Severity is inferred from the message prefix:
// "warning:" and "info:" lower the severity, everything else is an error.
// Unparseable lines are skipped.
func ParseText(output string) *Static {
	byFile := make(map[string][]types.Diagnostic)

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matches := lineRegex.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		lineNum, _ := strconv.Atoi(matches[2])
		msg := matches[4]

		severity := types.SeverityError
		switch {
		case strings.HasPrefix(msg, "warning:"):
			severity = types.SeverityWarning
			msg = strings.TrimSpace(strings.TrimPrefix(msg, "warning:"))
		case strings.HasPrefix(msg, "info:"):
			severity = types.SeverityInformation
			msg = strings.TrimSpace(strings.TrimPrefix(msg, "info:"))
		}

		file := matches[1]
		byFile[file] = append(byFile[file], types.Diagnostic{
			StartLine: lineNum,
			EndLine:   lineNum,
			Severity:  severity,
			Message:   msg,
		})
	}

	return &Static{byFile: byFile}
}
