// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-confidence-scorer R2.1 (code correctness metric).
package score

import (
	"math"
	"regexp"
	"strings"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// Internal weights of the six correctness sub-checks.
const (
	subWeightSyntax     = 0.25
	subWeightTypes      = 0.20
	subWeightCritical   = 0.25
	subWeightComplexity = 0.15
	subWeightWarnings   = 0.10
	subWeightGuards     = 0.05
)

// Sub-check penalties.
const (
	penSyntaxDiag      = 30
	penConflictMarker  = 50
	penBracketMismatch = 20
	penTypeDiag        = 20
	penAnyType         = 10
	penCriticalDiag    = 15
	penUnreachable     = 20
	penDynamicEval     = 30
	penControlDensity  = 15
	penDeepNesting     = 10
	penOversizedDiff   = 15
	penRepeatedLines   = 10
	penWarningDiag     = 5
	penMagicNumber     = 3
	penShortName       = 3
	penUnguarded       = 10
)

const (
	controlDensityLimit = 10
	nestingDepthLimit   = 5
	oversizedDiffLimit  = 300
	repeatedLineLimit   = 3
	guardLookback       = 5
)

var (
	syntaxMsgRe    = regexp.MustCompile(`(?i)syntax|parse|unexpected token|expected '`)
	typeMsgRe      = regexp.MustCompile(`(?i)\btype\b|not assignable|cannot use .* as`)
	conflictRe     = regexp.MustCompile(`^(<{7}|={7}|>{7})`)
	anyTypeRe      = regexp.MustCompile(`:\s*any\b|\bas\s+any\b`)
	dynamicEvalRe  = regexp.MustCompile(`\beval\s*\(|new\s+Function\s*\(`)
	terminatorRe   = regexp.MustCompile(`^\s*(return\b|throw\b|break\s*;?$|continue\s*;?$)`)
	closerRe       = regexp.MustCompile(`^\s*[}\])]`)
	caseLabelRe    = regexp.MustCompile(`^\s*(case\b|default\s*:)`)
	controlRe      = regexp.MustCompile(`\b(if|for|while|switch|catch|case)\b`)
	magicNumberRe  = regexp.MustCompile(`\b\d{2,}\b`)
	constLineRe    = regexp.MustCompile(`\b(const|final|#define)\b|^[A-Z_0-9]+\s*=`)
	shortDeclRe    = regexp.MustCompile(`\b(?:const|let|var)\s+([a-z])\s*=`)
	riskyOpRe      = regexp.MustCompile(`JSON\.parse\s*\(|\bfetch\s*\(|readFile|Unmarshal\s*\(|parseInt\s*\(|\.exec\s*\(`)
	guardRe        = regexp.MustCompile(`\btry\b|\bcatch\b|\bexcept\b|if\s+err|\.catch\s*\(|\?\.`)
)

// correctnessMetric is a composite of six weighted sub-checks; the metric
// score is the weighted sum of its sub-metric scores.
func correctnessMetric(in Input) types.MetricResult {
	subs := []types.MetricResult{
		runRules("syntax", subWeightSyntax, syntaxRules, in),
		runRules("type_safety", subWeightTypes, typeRules, in),
		runRules("critical_issues", subWeightCritical, criticalRules, in),
		runRules("complexity", subWeightComplexity, complexityRules, in),
		runRules("warnings", subWeightWarnings, warningRules, in),
		runRules("guards", subWeightGuards, guardRules, in),
	}

	var weighted float64
	var issues []types.MetricIssue
	for _, s := range subs {
		weighted += float64(s.Score) * s.Weight
		issues = append(issues, s.Issues...)
	}

	return types.MetricResult{
		Name:       "code_correctness",
		Score:      clampScore(int(math.Round(weighted))),
		Weight:     weightCorrectness,
		Issues:     issues,
		SubMetrics: subs,
	}
}

var syntaxRules = []Rule{
	{Name: "syntax_diagnostics", Eval: func(in Input) (int, []types.MetricIssue) {
		var issues []types.MetricIssue
		for _, d := range in.Diagnostics {
			if d.Severity == types.SeverityError && syntaxMsgRe.MatchString(d.Message) {
				issues = append(issues, types.MetricIssue{Message: d.Message, Line: d.StartLine})
			}
		}
		return penSyntaxDiag * len(issues), issues
	}},
	{Name: "conflict_markers", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "merge conflict marker", func(c types.ChangedLine) bool {
			return conflictRe.MatchString(c.Text)
		})
		return penConflictMarker * n, issues
	}},
	{Name: "bracket_balance", Eval: func(in Input) (int, []types.MetricIssue) {
		balance := 0
		for _, c := range in.Changed {
			for _, r := range c.Text {
				switch r {
				case '{', '(', '[':
					balance++
				case '}', ')', ']':
					balance--
				}
			}
		}
		if balance == 0 || len(in.Changed) == 0 {
			return 0, nil
		}
		return penBracketMismatch, []types.MetricIssue{{
			Message: "unbalanced brackets in changed region",
			Line:    in.Changed[0].Number,
		}}
	}},
}

var typeRules = []Rule{
	{Name: "type_diagnostics", Eval: func(in Input) (int, []types.MetricIssue) {
		var issues []types.MetricIssue
		for _, d := range in.Diagnostics {
			if d.Severity == types.SeverityError && typeMsgRe.MatchString(d.Message) {
				issues = append(issues, types.MetricIssue{Message: d.Message, Line: d.StartLine})
			}
		}
		return penTypeDiag * len(issues), issues
	}},
	{Name: "missing_types", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "untyped escape hatch", func(c types.ChangedLine) bool {
			return anyTypeRe.MatchString(c.Text)
		})
		return penAnyType * n, issues
	}},
}

var criticalRules = []Rule{
	{Name: "critical_diagnostics", Eval: func(in Input) (int, []types.MetricIssue) {
		var issues []types.MetricIssue
		for _, d := range in.Diagnostics {
			if d.Severity == types.SeverityError {
				issues = append(issues, types.MetricIssue{Message: d.Message, Line: d.StartLine})
			}
		}
		return penCriticalDiag * len(issues), issues
	}},
	{Name: "unreachable_code", Eval: func(in Input) (int, []types.MetricIssue) {
		var issues []types.MetricIssue
		prevTerminator := false
		prevNumber := 0
		for _, c := range in.Changed {
			trimmed := strings.TrimSpace(c.Text)
			if prevTerminator && c.Number == prevNumber+1 && trimmed != "" &&
				!closerRe.MatchString(c.Text) && !caseLabelRe.MatchString(c.Text) {
				issues = append(issues, types.MetricIssue{Message: "unreachable code after terminator", Line: c.Number})
			}
			prevTerminator = terminatorRe.MatchString(c.Text)
			prevNumber = c.Number
		}
		return penUnreachable * len(issues), issues
	}},
	{Name: "dynamic_eval", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "dynamic code evaluation", func(c types.ChangedLine) bool {
			return dynamicEvalRe.MatchString(c.Text)
		})
		return penDynamicEval * n, issues
	}},
}

var complexityRules = []Rule{
	{Name: "control_density", Eval: func(in Input) (int, []types.MetricIssue) {
		count := 0
		for _, c := range in.Changed {
			count += len(controlRe.FindAllString(c.Text, -1))
		}
		if count <= controlDensityLimit {
			return 0, nil
		}
		return penControlDensity, []types.MetricIssue{{Message: "high control-flow density in change"}}
	}},
	{Name: "deep_nesting", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "deeply nested code", func(c types.ChangedLine) bool {
			return indentDepth(c.Text) >= nestingDepthLimit
		})
		if n == 0 {
			return 0, nil
		}
		return penDeepNesting, issues[:1]
	}},
	{Name: "oversized_diff", Eval: func(in Input) (int, []types.MetricIssue) {
		if len(in.Changed) <= oversizedDiffLimit {
			return 0, nil
		}
		return penOversizedDiff, []types.MetricIssue{{Message: "oversized diff"}}
	}},
	{Name: "repeated_lines", Eval: func(in Input) (int, []types.MetricIssue) {
		counts := make(map[string]int)
		for _, c := range in.Changed {
			trimmed := strings.TrimSpace(c.Text)
			if len(trimmed) > 10 {
				counts[trimmed]++
			}
		}
		for _, n := range counts {
			if n >= repeatedLineLimit {
				return penRepeatedLines, []types.MetricIssue{{Message: "repeated identical lines in change"}}
			}
		}
		return 0, nil
	}},
}

var warningRules = []Rule{
	{Name: "warning_diagnostics", Eval: func(in Input) (int, []types.MetricIssue) {
		var issues []types.MetricIssue
		for _, d := range in.Diagnostics {
			if d.Severity == types.SeverityWarning || d.Severity == types.SeverityInformation {
				issues = append(issues, types.MetricIssue{Message: d.Message, Line: d.StartLine})
			}
		}
		return penWarningDiag * len(issues), issues
	}},
	{Name: "magic_numbers", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "magic number", func(c types.ChangedLine) bool {
			return magicNumberRe.MatchString(c.Text) && !constLineRe.MatchString(c.Text)
		})
		return penMagicNumber * n, issues
	}},
	{Name: "short_names", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "single-letter binding", func(c types.ChangedLine) bool {
			return shortDeclRe.MatchString(c.Text)
		})
		return penShortName * n, issues
	}},
}

var guardRules = []Rule{
	{Name: "unguarded_risky_ops", Eval: func(in Input) (int, []types.MetricIssue) {
		var issues []types.MetricIssue
		for _, c := range in.Changed {
			if !riskyOpRe.MatchString(c.Text) || guardRe.MatchString(c.Text) {
				continue
			}
			guarded := false
			for _, prev := range lookback(in, c.Number, guardLookback) {
				if guardRe.MatchString(prev) {
					guarded = true
					break
				}
			}
			if !guarded {
				issues = append(issues, types.MetricIssue{Message: "risky operation without guard", Line: c.Number})
			}
		}
		return penUnguarded * len(issues), issues
	}},
}

// indentDepth estimates nesting depth from leading whitespace, one level
// per tab or four spaces.
func indentDepth(line string) int {
	spaces := 0
	for _, r := range line {
		switch r {
		case ' ':
			spaces++
		case '\t':
			spaces += 4
		default:
			return spaces / 4
		}
	}
	return 0
}
