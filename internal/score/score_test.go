// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// changed builds a changed-line set from consecutive lines starting at 1.
func changed(lines ...string) []types.ChangedLine {
	var out []types.ChangedLine
	for i, l := range lines {
		out = append(out, types.ChangedLine{Number: i + 1, Text: l})
	}
	return out
}

func metricByName(t *testing.T, res types.ConfidenceResult, name string) types.MetricResult {
	t.Helper()
	for _, m := range res.Metrics {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("metric %q not found", name)
	return types.MetricResult{}
}

func TestEvaluate_CleanChangeScoresHigh(t *testing.T) {
	in := Input{
		FilePath: "util.ts",
		Current:  "// doc\nexport function formatDate(d: Date) {\n  return d.toISOString();\n}\n",
		Changed:  changed("  return d.toISOString();"),
		Added:    1,
		Removed:  1,
		Tests:    []string{"util.test.ts"},
	}

	res := Evaluate(in)
	assert.Greater(t, res.Total, 85)
	assert.Equal(t, types.StatusHigh, res.Status)
	assert.Len(t, res.Metrics, 6)
}

func TestEvaluate_EmptyChangeIsVacuouslyConfident(t *testing.T) {
	res := Evaluate(Input{FilePath: "a.ts", Current: "const x = 1;\n"})
	assert.Equal(t, 100, res.Total)
	assert.Equal(t, types.StatusHigh, res.Status)
}

func TestEvaluate_HardcodedSecretTanksSecurity(t *testing.T) {
	clean := Evaluate(Input{
		FilePath: "cfg.ts",
		Current:  "const retries = 3;\n",
		Changed:  changed("const retries = 3;"),
	})
	leaked := Evaluate(Input{
		FilePath: "cfg.ts",
		Current:  `const api_key = "sk-live-123456";` + "\n",
		Changed:  changed(`const api_key = "sk-live-123456";`),
	})

	assert.Less(t, leaked.Total, clean.Total)

	sec := metricByName(t, leaked, "security")
	assert.LessOrEqual(t, sec.Score, 60)
	require.NotEmpty(t, sec.Issues)
	assert.Equal(t, 1, sec.Issues[0].Line)
}

func TestEvaluate_MorePenaltiesNeverRaiseTheScore(t *testing.T) {
	one := Evaluate(Input{
		FilePath: "a.js",
		Current:  "eval(input);\n",
		Changed:  changed("eval(input);"),
	})
	two := Evaluate(Input{
		FilePath: "a.js",
		Current:  "eval(input);\ndocument.write(input);\n",
		Changed:  changed("eval(input);", "document.write(input);"),
	})

	assert.LessOrEqual(t, two.Total, one.Total)
}

func TestEvaluate_DiagnosticsOutsideChangedRegionIgnored(t *testing.T) {
	in := Input{
		FilePath: "a.ts",
		Current:  "line1\nline2\nline3\n",
		Changed:  []types.ChangedLine{{Number: 1, Text: "line1"}},
		Diagnostics: []types.Diagnostic{
			{StartLine: 3, EndLine: 3, Severity: types.SeverityError, Message: "unrelated"},
		},
	}

	res := Evaluate(in)
	correctness := metricByName(t, res, "code_correctness")
	assert.Equal(t, 100, correctness.Score)
}

func TestEvaluate_DiagnosticInChangedRegionPenalized(t *testing.T) {
	in := Input{
		FilePath: "a.ts",
		Current:  "line1\nline2\n",
		Changed:  []types.ChangedLine{{Number: 2, Text: "line2"}},
		Diagnostics: []types.Diagnostic{
			{StartLine: 2, EndLine: 2, Severity: types.SeverityError, Message: "syntax error: unexpected token"},
		},
	}

	res := Evaluate(in)
	correctness := metricByName(t, res, "code_correctness")
	assert.Less(t, correctness.Score, 100)
}

func TestTestMetric_EditingTestsIsFullScore(t *testing.T) {
	res := Evaluate(Input{
		FilePath:   "util.test.ts",
		Current:    "it('works', () => {});\n",
		Changed:    changed("it('works', () => {});"),
		IsTestFile: true,
	})

	m := metricByName(t, res, "test_validation")
	assert.Equal(t, 100, m.Score)
}

func TestTestMetric_NewLogicWithoutCoverage(t *testing.T) {
	res := Evaluate(Input{
		FilePath: "util.ts",
		Current:  "function f(x) {\n  if (x) { return 1; }\n}\n",
		Changed:  changed("function f(x) {", "  if (x) { return 1; }"),
	})

	m := metricByName(t, res, "test_validation")
	assert.Less(t, m.Score, 60)
	assert.NotEmpty(t, m.Issues)
}

func TestContracts_BreakingSymbolsPenalized(t *testing.T) {
	res := Evaluate(Input{
		FilePath:        "api.ts",
		Current:         "export function fetchUser(id: string, opts: Opts) {}\n",
		Changed:         changed("export function fetchUser(id: string, opts: Opts) {}"),
		BreakingSymbols: []string{"fetchUser"},
	})

	m := metricByName(t, res, "contracts_architecture")
	assert.Equal(t, 75, m.Score)
	require.Len(t, m.Issues, 1)
	assert.Contains(t, m.Issues[0].Message, "fetchUser")
}

func TestRisk_LargeDiffPenalized(t *testing.T) {
	small := Evaluate(Input{FilePath: "a.ts", Current: "x\n", Changed: changed("x"), Added: 10})
	large := Evaluate(Input{FilePath: "a.ts", Current: "x\n", Changed: changed("x"), Added: 180, Removed: 60})

	smallRisk := metricByName(t, small, "change_risk")
	largeRisk := metricByName(t, large, "change_risk")
	assert.Greater(t, smallRisk.Score, largeRisk.Score)
}

func TestHygiene_NeverAffectsTotal(t *testing.T) {
	dirty := Evaluate(Input{
		FilePath: "a.ts",
		Current:  "const x = 1;   \n",
		Changed:  changed("const x = 1;   "),
	})

	m := metricByName(t, dirty, "code_hygiene")
	assert.Zero(t, m.Weight)
	assert.Less(t, m.Score, 100)

	clean := Evaluate(Input{
		FilePath: "a.ts",
		Current:  "const x = 1;\n",
		Changed:  changed("const x = 1;"),
	})
	assert.Equal(t, clean.Total, dirty.Total)
}

func TestAggregate_WeightedMean(t *testing.T) {
	metrics := []types.MetricResult{
		{Name: "a", Score: 100, Weight: 0.5},
		{Name: "b", Score: 50, Weight: 0.5},
		{Name: "c", Score: 0, Weight: 0}, // Informational; excluded.
	}
	assert.Equal(t, 75, aggregate(metrics))
}

func TestAggregate_AllZeroWeightsIsFullConfidence(t *testing.T) {
	metrics := []types.MetricResult{
		{Name: "a", Score: 10, Weight: 0},
	}
	assert.Equal(t, 100, aggregate(metrics))
}

func TestStatusBands(t *testing.T) {
	cases := []struct {
		total int
		want  types.Status
	}{
		{100, types.StatusHigh},
		{86, types.StatusHigh},
		{85, types.StatusAcceptable},
		{70, types.StatusAcceptable},
		{69, types.StatusWarning},
		{50, types.StatusWarning},
		{49, types.StatusCritical},
		{0, types.StatusCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, types.StatusFor(tc.total), "total %d", tc.total)
	}
}

func TestCorrectness_ConflictMarker(t *testing.T) {
	res := Evaluate(Input{
		FilePath: "a.ts",
		Current:  "<<<<<<< HEAD\nconst x = 1;\n",
		Changed:  changed("<<<<<<< HEAD", "const x = 1;"),
	})

	correctness := metricByName(t, res, "code_correctness")
	assert.Less(t, correctness.Score, 100)

	require.NotEmpty(t, correctness.SubMetrics)
	for _, sub := range correctness.SubMetrics {
		if sub.Name == "syntax" {
			assert.LessOrEqual(t, sub.Score, 50)
			return
		}
	}
	t.Fatal("syntax sub-metric not found")
}
