// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-confidence-scorer R2.6 (code hygiene metric).
package score

import (
	"regexp"
	"strings"

	"github.com/petar-djukic/go-impact/pkg/types"
)

const (
	penMixedIndent   = 5
	penTrailingSpace = 3
	penOddIndent     = 5
	penNamingStyle   = 5
	penMissingDoc    = 5
)

var (
	trailingRe     = regexp.MustCompile(`[ \t]+$`)
	snakeIdentRe   = regexp.MustCompile(`\b(?:const|let|var|function)\s+[a-z]+_[a-z_]+\b`)
	exportedFuncRe = regexp.MustCompile(`^\s*export\s+(?:async\s+)?function\s+\w+|^func\s+[A-Z]\w*\s*\(`)
	docCommentRe   = regexp.MustCompile(`^\s*(//|/\*|\*|#)`)
)

// hygieneMetric is informational only (weight 0): whitespace and naming
// consistency plus missing documentation on new exported functions. It
// never affects the aggregated total.
func hygieneMetric(in Input) types.MetricResult {
	return runRules("code_hygiene", weightHygiene, hygieneRules, in)
}

var hygieneRules = []Rule{
	{Name: "mixed_indentation", Eval: func(in Input) (int, []types.MetricIssue) {
		tabs, spaces := false, false
		for _, c := range in.Changed {
			if strings.HasPrefix(c.Text, "\t") {
				tabs = true
			}
			if strings.HasPrefix(c.Text, " ") {
				spaces = true
			}
		}
		if tabs && spaces {
			return penMixedIndent, []types.MetricIssue{{Message: "mixed tab and space indentation"}}
		}
		return 0, nil
	}},
	{Name: "trailing_whitespace", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "trailing whitespace", func(c types.ChangedLine) bool {
			return trailingRe.MatchString(c.Text)
		})
		return penTrailingSpace * n, issues
	}},
	{Name: "indent_width", Eval: func(in Input) (int, []types.MetricIssue) {
		for _, c := range in.Changed {
			width := 0
			for _, r := range c.Text {
				if r != ' ' {
					break
				}
				width++
			}
			if width%2 == 1 {
				return penOddIndent, []types.MetricIssue{{Message: "inconsistent indentation width", Line: c.Number}}
			}
		}
		return 0, nil
	}},
	{Name: "naming_style", Eval: func(in Input) (int, []types.MetricIssue) {
		ext := strings.ToLower(in.FilePath)
		if !strings.HasSuffix(ext, ".js") && !strings.HasSuffix(ext, ".jsx") &&
			!strings.HasSuffix(ext, ".ts") && !strings.HasSuffix(ext, ".tsx") {
			return 0, nil
		}
		n, issues := countMatches(in, "snake_case identifier in camelCase codebase", func(c types.ChangedLine) bool {
			return snakeIdentRe.MatchString(c.Text)
		})
		return penNamingStyle * n, issues
	}},
	{Name: "missing_docs", Eval: func(in Input) (int, []types.MetricIssue) {
		var issues []types.MetricIssue
		for _, c := range in.Changed {
			if !exportedFuncRe.MatchString(c.Text) {
				continue
			}
			prev := lookback(in, c.Number, 1)
			if len(prev) == 0 || !docCommentRe.MatchString(prev[len(prev)-1]) {
				issues = append(issues, types.MetricIssue{Message: "new exported function without documentation", Line: c.Number})
			}
		}
		return penMissingDoc * len(issues), issues
	}},
}
