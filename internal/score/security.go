// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-confidence-scorer R2.2 (security metric).
package score

import (
	"regexp"

	"github.com/petar-djukic/go-impact/pkg/types"
)

const (
	penHardcodedSecret = 40
	penDangerousAPI    = 25
	penUnvalidated     = 15
	validationLookback = 5
)

// Hardcoded-secret patterns: assignments of credential-looking names to
// string literals, cloud key formats, and embedded private keys.
var secretRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|secret|password|passwd|auth[_-]?token|access[_-]?token)\s*[:=]\s*["'][^"']{6,}["']`),
	regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
	regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH )?PRIVATE KEY-----`),
	regexp.MustCompile(`(?i)\bbearer\s+[a-z0-9._\-]{20,}`),
}

// Dangerous API usage: dynamic evaluation, unsanitized HTML injection,
// shell execution.
var dangerousRes = []*regexp.Regexp{
	regexp.MustCompile(`\beval\s*\(`),
	regexp.MustCompile(`new\s+Function\s*\(`),
	regexp.MustCompile(`\.innerHTML\s*=`),
	regexp.MustCompile(`dangerouslySetInnerHTML`),
	regexp.MustCompile(`document\.write\s*\(`),
	regexp.MustCompile(`child_process|\bexecSync\s*\(|os\.system\s*\(|pickle\.loads\s*\(`),
}

var (
	externalInputRe = regexp.MustCompile(`req\.(body|query|params)|process\.argv|os\.Args|sys\.argv|request\.(form|args|json)`)
	validationRe    = regexp.MustCompile(`(?i)validat|sanitiz|schema|escape\(|zod|joi\.`)
)

// securityMetric penalizes hardcoded secrets, dangerous API usage, and
// external input consumed without nearby validation.
func securityMetric(in Input) types.MetricResult {
	return runRules("security", weightSecurity, securityRules, in)
}

var securityRules = []Rule{
	{Name: "hardcoded_secrets", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "hardcoded secret", func(c types.ChangedLine) bool {
			return matchesAny(c.Text, secretRes)
		})
		return penHardcodedSecret * n, issues
	}},
	{Name: "dangerous_apis", Eval: func(in Input) (int, []types.MetricIssue) {
		n, issues := countMatches(in, "dangerous API usage", func(c types.ChangedLine) bool {
			return matchesAny(c.Text, dangerousRes)
		})
		return penDangerousAPI * n, issues
	}},
	{Name: "unvalidated_input", Eval: func(in Input) (int, []types.MetricIssue) {
		var issues []types.MetricIssue
		for _, c := range in.Changed {
			if !externalInputRe.MatchString(c.Text) || validationRe.MatchString(c.Text) {
				continue
			}
			validated := false
			for _, prev := range lookback(in, c.Number, validationLookback) {
				if validationRe.MatchString(prev) {
					validated = true
					break
				}
			}
			if !validated {
				issues = append(issues, types.MetricIssue{Message: "external input without validation", Line: c.Number})
			}
		}
		return penUnvalidated * len(issues), issues
	}},
}

func matchesAny(line string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
