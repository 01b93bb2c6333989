// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-impact/internal/baseline"
	"github.com/petar-djukic/go-impact/internal/diagnostics"
	"github.com/petar-djukic/go-impact/internal/fsys"
	"github.com/petar-djukic/go-impact/pkg/types"
)

// newTestEngine builds an engine over a temp dir with git disabled, so the
// baseline chain resolves from disk and session snapshots.
func newTestEngine(t *testing.T, files map[string]string) (*Engine, string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	e := New(Deps{
		FS:          fsys.OS{},
		Diagnostics: diagnostics.None{},
		Config: Config{
			RepoRoot:     dir,
			Mode:         baseline.ModeLocal,
			GitEnabled:   false,
			CacheEnabled: true,
		},
	})
	return e, dir
}

func buffer(text string) types.SourceVersion {
	return types.SourceVersion{Text: text, Origin: types.OriginBuffer}
}

func issueTypes(issues []types.Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Type)
	}
	return out
}

func TestAnalyze_EqualContentFastPath(t *testing.T) {
	src := "export function add(a: number, b: number) {\n  return a + b;\n}\n"
	e, dir := newTestEngine(t, map[string]string{"util.ts": src})
	path := filepath.Join(dir, "util.ts")

	res, err := e.Analyze(context.Background(), path, buffer(src))
	require.NoError(t, err)

	assert.Empty(t, res.Report.Functions)
	assert.Empty(t, res.Report.DownstreamFiles)
	assert.Empty(t, res.Report.Issues)
	assert.Equal(t, 100, res.Confidence.Total)
	assert.Equal(t, types.StatusHigh, res.Confidence.Status)
	assert.Equal(t, types.RefSnapshot, res.Baseline.RefType)
}

func TestAnalyze_BodyOnlyEditHasNoImpact(t *testing.T) {
	e, dir := newTestEngine(t, map[string]string{
		"util.ts":     "export function add(a: number, b: number) {\n  return a + b;\n}\n",
		"consumer.ts": "import { add } from './util';\nadd(1, 2);\n",
	})
	path := filepath.Join(dir, "util.ts")

	edited := "export function add(a: number, b: number) {\n  const sum = a + b;\n  return sum;\n}\n"
	res, err := e.Analyze(context.Background(), path, buffer(edited))
	require.NoError(t, err)

	assert.Empty(t, res.Report.Functions, "body edits do not change signatures")
	assert.Empty(t, res.Report.DownstreamFiles)
	assert.Empty(t, res.Report.Issues)
	assert.Equal(t, "ok", res.ParseStatus)
}

func TestAnalyze_SignatureChangeFindsDownstream(t *testing.T) {
	e, dir := newTestEngine(t, map[string]string{
		"util.ts":      "export function formatDate(d: Date) {\n  return d.toISOString();\n}\n",
		"consumer.ts":  "import { formatDate } from './util';\nformatDate(new Date());\n",
		"util.test.ts": "import { formatDate } from './util';\n",
		"loner.ts":     "const unrelated = 1;\n",
	})
	path := filepath.Join(dir, "util.ts")

	edited := "export function formatDate(d: Date, locale: string) {\n  return d.toISOString();\n}\n"
	res, err := e.Analyze(context.Background(), path, buffer(edited))
	require.NoError(t, err)

	assert.Equal(t, []string{"formatDate"}, res.Report.Functions)
	assert.Contains(t, res.Report.DownstreamFiles, filepath.Join(dir, "consumer.ts"))
	assert.NotContains(t, res.Report.DownstreamFiles, filepath.Join(dir, "loner.ts"))
	assert.Contains(t, res.Report.Tests, filepath.Join(dir, "util.test.ts"))
	assert.Contains(t, issueTypes(res.Report.Issues), types.IssueBreakingChange)
	assert.NotContains(t, issueTypes(res.Report.Issues), types.IssueNoTestCoverage)
}

func TestAnalyze_NoCoverageIssue(t *testing.T) {
	e, dir := newTestEngine(t, map[string]string{
		"util.ts": "export function formatDate(d: Date) {}\n",
	})
	path := filepath.Join(dir, "util.ts")

	edited := "export function formatDate(d: Date, locale: string) {}\n"
	res, err := e.Analyze(context.Background(), path, buffer(edited))
	require.NoError(t, err)

	assert.Contains(t, issueTypes(res.Report.Issues), types.IssueNoTestCoverage)
}

func TestAnalyze_ParseFailureIsReported(t *testing.T) {
	e, dir := newTestEngine(t, map[string]string{
		"util.ts": "export function ok() {}\n",
	})
	path := filepath.Join(dir, "util.ts")

	res, err := e.Analyze(context.Background(), path, buffer("export function oops(((( {\n"))
	require.NoError(t, err)

	assert.Equal(t, "failed", res.ParseStatus)
	assert.Contains(t, issueTypes(res.Report.Issues), types.IssueParseFailure)
	assert.Empty(t, res.Report.Functions, "a failed parse never claims symbol changes")
}

func TestAnalyze_SnapshotAdvancesAcrossSaves(t *testing.T) {
	v1 := "export function f(a: number) {}\n"
	e, dir := newTestEngine(t, map[string]string{"util.ts": v1})
	path := filepath.Join(dir, "util.ts")

	// First save changes the signature relative to the disk seed.
	v2 := "export function f(a: number, b: number) {}\n"
	res, err := e.Analyze(context.Background(), path, buffer(v2))
	require.NoError(t, err)
	require.Equal(t, []string{"f"}, res.Report.Functions)

	// Second save of identical content diffs against v2, not v1.
	res, err = e.Analyze(context.Background(), path, buffer(v2))
	require.NoError(t, err)
	assert.Empty(t, res.Report.Functions)
	assert.Equal(t, 100, res.Confidence.Total)
}

func TestAnalyze_RemovedFunctionIsBreaking(t *testing.T) {
	e, dir := newTestEngine(t, map[string]string{
		"util.ts": "export function keep() {}\nexport function gone() {}\n",
	})
	path := filepath.Join(dir, "util.ts")

	res, err := e.Analyze(context.Background(), path, buffer("export function keep() {}\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"gone"}, res.Report.Functions)
}

func TestAnalyze_CanceledContext(t *testing.T) {
	e, dir := newTestEngine(t, map[string]string{"util.ts": "const x = 1;\n"})
	path := filepath.Join(dir, "util.ts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Analyze(ctx, path, buffer("const x = 2;\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_ClearCachesResetsBaseline(t *testing.T) {
	v1 := "export function f(a: number) {}\n"
	e, dir := newTestEngine(t, map[string]string{"util.ts": v1})
	path := filepath.Join(dir, "util.ts")

	v2 := "export function f(a: number, b: number) {}\n"
	_, err := e.Analyze(context.Background(), path, buffer(v2))
	require.NoError(t, err)

	e.ClearCaches()

	// Back to the disk seed: v2 differs from v1 again.
	res, err := e.Analyze(context.Background(), path, buffer(v2))
	require.NoError(t, err)
	assert.Equal(t, []string{"f"}, res.Report.Functions)
}

func TestAnalyze_DeterministicOrdering(t *testing.T) {
	e, dir := newTestEngine(t, map[string]string{
		"util.ts": "export function zeta() {}\nexport function alpha() {}\n",
	})
	path := filepath.Join(dir, "util.ts")

	res, err := e.Analyze(context.Background(), path, buffer("const nothing = 0;\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "zeta"}, res.Report.Functions)
}
