// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-confidence-scorer R2.5 (change risk metric).
package score

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/petar-djukic/go-impact/pkg/types"
)

const (
	penHugeDiff   = 30
	penLargeDiff  = 20
	penMediumDiff = 10
	penFlowJump   = 15
	penMixedChurn = 10

	hugeDiffLines   = 200
	largeDiffLines  = 100
	mediumDiffLines = 50
	flowJumpLimit   = 10
	mixedChurnLines = 150
)

var flowRe = regexp.MustCompile(`\b(if|for|while|switch|case|catch|except)\b`)

// riskMetric penalizes large diffs, control-flow jumps relative to the
// prior version, and large mixed add/remove churn.
func riskMetric(in Input) types.MetricResult {
	return runRules("change_risk", weightRisk, riskRules, in)
}

var riskRules = []Rule{
	{Name: "diff_size", Eval: func(in Input) (int, []types.MetricIssue) {
		total := in.Added + in.Removed
		switch {
		case total > hugeDiffLines:
			return penHugeDiff, []types.MetricIssue{{Message: fmt.Sprintf("very large change (%d lines)", total)}}
		case total > largeDiffLines:
			return penLargeDiff, []types.MetricIssue{{Message: fmt.Sprintf("large change (%d lines)", total)}}
		case total > mediumDiffLines:
			return penMediumDiff, []types.MetricIssue{{Message: fmt.Sprintf("sizeable change (%d lines)", total)}}
		default:
			return 0, nil
		}
	}},
	{Name: "control_flow_jump", Eval: func(in Input) (int, []types.MetricIssue) {
		if in.Prior == "" {
			return 0, nil
		}
		jump := countFlow(in.Current) - countFlow(in.Prior)
		if jump <= flowJumpLimit {
			return 0, nil
		}
		return penFlowJump, []types.MetricIssue{{Message: fmt.Sprintf("control-flow statements up by %d", jump)}}
	}},
	{Name: "mixed_churn", Eval: func(in Input) (int, []types.MetricIssue) {
		if in.Added > 0 && in.Removed > 0 && in.Added+in.Removed > mixedChurnLines {
			return penMixedChurn, []types.MetricIssue{{Message: "large mixed add/remove churn"}}
		}
		return 0, nil
	}},
}

func countFlow(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		count += len(flowRe.FindAllString(line, -1))
	}
	return count
}
