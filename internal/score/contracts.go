// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-confidence-scorer R2.4 (contracts & architecture metric).
package score

import (
	"regexp"

	"github.com/petar-djukic/go-impact/pkg/types"
)

const (
	penBreakingChange = 25
	penDeepImport     = 15
	penSchemaChange   = 20
)

var (
	deepImportRe = regexp.MustCompile(`(\.\./){3,}|/internal/`)
	importLineRe = regexp.MustCompile(`^\s*(import\b|from\s|const\s.*require\()`)
	schemaRe     = regexp.MustCompile(`(?i)\b(ALTER|DROP|CREATE)\s+TABLE\b|\b(ADD|DROP)\s+COLUMN\b|\bmigration\b`)
)

// contractsMetric penalizes actual signature changes to exported symbols
// (the engine compares normalized signatures before/after, the same rule
// family as the semantic diff; body edits never land here), deep
// cross-layer imports, and schema-migration statements in the diff.
func contractsMetric(in Input) types.MetricResult {
	return runRules("contracts_architecture", weightContracts, contractRules, in)
}

var contractRules = []Rule{
	{Name: "breaking_api_change", Eval: func(in Input) (int, []types.MetricIssue) {
		var issues []types.MetricIssue
		for _, sym := range in.BreakingSymbols {
			issues = append(issues, types.MetricIssue{
				Message: "breaking signature change: " + sym,
			})
		}
		return penBreakingChange * len(issues), issues
	}},
	{Name: "deep_imports", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "deep cross-layer import", func(c types.ChangedLine) bool {
			return importLineRe.MatchString(c.Text) && deepImportRe.MatchString(c.Text)
		})
		return penDeepImport * n, issues
	}},
	{Name: "schema_migrations", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "schema migration statement", func(c types.ChangedLine) bool {
			return schemaRe.MatchString(c.Text)
		})
		return penSchemaChange * n, issues
	}},
}
