// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-confidence-scorer R2.3 (test validation metric).
package score

import (
	"fmt"
	"regexp"

	"github.com/petar-djukic/go-impact/pkg/types"
)

const (
	penNoCoverage      = 40
	penPerUncovered    = 5
	penPartialCoverage = 2
	partialCoverageCap = 20
)

var newPatternRe = regexp.MustCompile(`\b(if|for|while|switch|function|class|def)\b|=>`)

// testMetric rewards edits to test files and penalizes new control-flow or
// declaration patterns that have zero or only partial nearby coverage.
func testMetric(in Input) types.MetricResult {
	if in.IsTestFile {
		return types.MetricResult{Name: "test_validation", Score: 100, Weight: weightTests}
	}
	return runRules("test_validation", weightTests, testRules, in)
}

var testRules = []Rule{
	{Name: "coverage", Eval: func(in Input) (int, []types.MetricIssue) {
		patterns := 0
		for _, c := range in.Changed {
			if newPatternRe.MatchString(c.Text) {
				patterns++
			}
		}
		if patterns == 0 {
			return 0, nil
		}

		if len(in.Tests) == 0 {
			return penNoCoverage + penPerUncovered*patterns, []types.MetricIssue{{
				Message: fmt.Sprintf("%d new control-flow or declaration patterns with no discovered test coverage", patterns),
			}}
		}

		penalty := penPartialCoverage * patterns
		if penalty > partialCoverageCap {
			penalty = partialCoverageCap
		}
		return penalty, []types.MetricIssue{{
			Message: fmt.Sprintf("%d new patterns with only nearby test coverage", patterns),
		}}
	}},
}
