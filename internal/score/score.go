// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package score evaluates six independent weighted metrics over the
// changed-region text, diagnostics, and structural deltas, and aggregates
// them into a single 0-100 confidence score with a status band.
//
// Each sub-metric is a self-contained pure rule over the scorer input; a
// metric is a fold over its ordered rule list. Rules see only the
// changed-line set plus fixed-size lookback windows, never the whole file.
// Implements: prd006-confidence-scorer R1, R2, R5;
//
//	docs/ARCHITECTURE § Confidence Scoring.
package score

import (
	"math"
	"strings"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// Metric weights. Hygiene is informational only and never affects the total.
const (
	weightCorrectness = 0.10
	weightSecurity    = 0.25
	weightTests       = 0.20
	weightContracts   = 0.15
	weightRisk        = 0.10
	weightHygiene     = 0.0
)

// Input is everything the scorer consumes for one analysis call.
type Input struct {
	FilePath        string
	Current         string              // Current full text (lookback windows only)
	Prior           string              // Prior full text, "" when unavailable
	Changed         []types.ChangedLine // The changed-line set
	Added           int                 // Lines added relative to prior
	Removed         int                 // Lines removed relative to prior
	Diagnostics     []types.Diagnostic  // Live diagnostics for the file
	Tests           []string            // Discovered candidate test files
	BreakingSymbols []string            // Exported symbols whose signature changed
	IsTestFile      bool
}

// Rule is one independently testable scoring rule: it inspects the input
// and returns a penalty (points subtracted from the metric's 100 start)
// plus the issues that justify it.
type Rule struct {
	Name string
	Eval func(in Input) (int, []types.MetricIssue)
}

// Evaluate runs all six metrics and aggregates them.
//
// Implements: prd006-confidence-scorer R5.1-R5.3.
func Evaluate(in Input) types.ConfidenceResult {
	in.Diagnostics = diagnosticsInChangedRegion(in.Diagnostics, in.Changed)

	metrics := []types.MetricResult{
		correctnessMetric(in),
		securityMetric(in),
		testMetric(in),
		contractsMetric(in),
		riskMetric(in),
		hygieneMetric(in),
	}

	total := aggregate(metrics)
	return types.ConfidenceResult{
		Total:   total,
		Status:  types.StatusFor(total),
		Metrics: metrics,
	}
}

// aggregate computes round(clamp(sum(score*weight)/sum(weight), 0, 100)).
// Zero-weight metrics are excluded from the denominator; if every weight is
// zero the result is 100 (vacuous confidence).
func aggregate(metrics []types.MetricResult) int {
	var weighted, weights float64
	for _, m := range metrics {
		if m.Weight == 0 {
			continue
		}
		weighted += float64(m.Score) * m.Weight
		weights += m.Weight
	}
	if weights == 0 {
		return 100
	}
	return clampScore(int(math.Round(weighted / weights)))
}

// runRules folds an ordered rule list into one MetricResult.
func runRules(name string, weight float64, rules []Rule, in Input) types.MetricResult {
	score := 100
	var issues []types.MetricIssue

	for _, r := range rules {
		penalty, ruleIssues := r.Eval(in)
		score -= penalty
		issues = append(issues, ruleIssues...)
	}

	return types.MetricResult{
		Name:   name,
		Score:  clampScore(score),
		Weight: weight,
		Issues: issues,
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// diagnosticsInChangedRegion keeps only diagnostics whose range intersects
// the changed-line set, tying the signal to the actual edit.
func diagnosticsInChangedRegion(diags []types.Diagnostic, changed []types.ChangedLine) []types.Diagnostic {
	if len(diags) == 0 || len(changed) == 0 {
		return nil
	}

	lines := make(map[int]bool, len(changed))
	for _, c := range changed {
		lines[c.Number] = true
	}

	var kept []types.Diagnostic
	for _, d := range diags {
		end := d.EndLine
		if end < d.StartLine {
			end = d.StartLine
		}
		for l := d.StartLine; l <= end; l++ {
			if lines[l] {
				kept = append(kept, d)
				break
			}
		}
	}
	return kept
}

// lookback returns up to n lines of the current text immediately before
// line (1-based), for guard-pattern detection around risky operations.
func lookback(in Input, line, n int) []string {
	all := strings.Split(in.Current, "\n")
	if line-1 > len(all) {
		return nil
	}
	start := line - 1 - n
	if start < 0 {
		start = 0
	}
	return all[start : line-1]
}

// countMatches counts changed lines for which match returns true, emitting
// one issue per match.
func countMatches(in Input, message string, match func(line types.ChangedLine) bool) (int, []types.MetricIssue) {
	count := 0
	var issues []types.MetricIssue
	for _, c := range in.Changed {
		if match(c) {
			count++
			issues = append(issues, types.MetricIssue{Message: message, Line: c.Number})
		}
	}
	return count, issues
}
