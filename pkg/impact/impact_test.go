// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package impact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-impact/pkg/types"
)

func TestNew_RequiresWorkDir(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_RejectsMissingWorkDir(t *testing.T) {
	_, err := New(Config{WorkDir: "/no/such/dir"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_RejectsUnknownBaselineMode(t *testing.T) {
	_, err := New(Config{WorkDir: t.TempDir(), BaselineMode: "detached"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_MissingRepoIsNotAnError(t *testing.T) {
	// Git integration requested but the dir has no repository: the analyzer
	// still works off disk and snapshot baselines.
	a, err := New(Config{WorkDir: t.TempDir(), GitEnabled: true, CacheEnabled: true})
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	utilPath := filepath.Join(dir, "util.ts")
	require.NoError(t, os.WriteFile(utilPath,
		[]byte("export function add(a: number, b: number) {\n  return a + b;\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "consumer.ts"),
		[]byte("import { add } from './util';\nconsole.log(add(1, 2));\n"), 0o644))

	a, err := New(Config{WorkDir: dir, CacheEnabled: true})
	require.NoError(t, err)

	edited := "export function add(a: number, b: number, c: number) {\n  return a + b + c;\n}\n"
	analysis, err := a.Analyze(context.Background(), utilPath, types.SourceVersion{
		Text:   edited,
		Origin: types.OriginBuffer,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"add"}, analysis.Report.Functions)
	assert.Contains(t, analysis.Report.DownstreamFiles, filepath.Join(dir, "consumer.ts"))
	assert.Equal(t, "ok", analysis.ParseStatus)
	assert.Equal(t, types.RefSnapshot, analysis.Baseline.RefType)
	assert.NotZero(t, analysis.Confidence.Total)
}

func TestAnalyze_Canceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ts")
	require.NoError(t, os.WriteFile(path, []byte("const x = 1;\n"), 0o644))

	a, err := New(Config{WorkDir: dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Analyze(ctx, path, types.SourceVersion{Text: "const x = 2;\n"})
	assert.ErrorIs(t, err, ErrCanceled)
}
