// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine implements the analysis orchestrator, wiring baseline
// resolution, the semantic diff, discovery, and the confidence scorer into
// one synchronous pipeline per analyzed file.
// Implements: prd001-impact-interface R2;
//
//	docs/ARCHITECTURE § Analysis Lifecycle.
package engine

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/petar-djukic/go-impact/internal/baseline"
	"github.com/petar-djukic/go-impact/internal/diagnostics"
	"github.com/petar-djukic/go-impact/internal/discovery"
	"github.com/petar-djukic/go-impact/internal/fsys"
	"github.com/petar-djukic/go-impact/internal/inventory"
	"github.com/petar-djukic/go-impact/internal/score"
	"github.com/petar-djukic/go-impact/internal/semdiff"
	"github.com/petar-djukic/go-impact/pkg/types"
)

// Config holds the engine-level options consumed from the caller's
// configuration surface.
type Config struct {
	RepoRoot     string
	Mode         baseline.Mode
	TargetRef    string
	GitEnabled   bool
	CacheEnabled bool
	ScanTimeout  time.Duration // Bound on each discovery walk (0 = none)
}

// Deps holds injected collaborators. VCS may be nil when git integration
// is disabled; FS and Diagnostics must be set (use fsys.OS and
// diagnostics.None for defaults).
type Deps struct {
	VCS         baseline.VersionSource
	FS          fsys.Filesystem
	Diagnostics diagnostics.Provider
	Config      Config
}

// Result is the full outcome of one analysis call: the impact report, the
// confidence result, how the baseline was resolved, and the parse status.
type Result struct {
	Report      types.ImpactReport
	Confidence  types.ConfidenceResult
	Baseline    types.BaselineResolution
	ParseStatus string
}

// Engine analyzes single-file edits. One long-lived instance owns the
// session caches; independent files may be analyzed concurrently.
type Engine struct {
	deps     Deps
	resolver *baseline.Resolver
}

// New creates an Engine with the given dependencies.
func New(deps Deps) *Engine {
	return &Engine{
		deps: deps,
		resolver: baseline.New(baseline.Config{
			RepoRoot:     deps.Config.RepoRoot,
			Mode:         deps.Config.Mode,
			TargetRef:    deps.Config.TargetRef,
			GitEnabled:   deps.Config.GitEnabled,
			CacheEnabled: deps.Config.CacheEnabled,
		}, deps.VCS, deps.FS),
	}
}

// ClearCaches drops the session baseline caches. Eviction is explicit and
// caller-driven.
func (e *Engine) ClearCaches() {
	e.resolver.ClearCaches()
}

// Analyze runs the full pipeline for one file: resolve baseline, diff,
// discover impact, score. The call is synchronous and sequential; a caller
// wanting a deadline wraps it in a context timeout and discards the result.
//
// Implements: prd001-impact-interface R2.1-R2.6.
func (e *Engine) Analyze(ctx context.Context, filePath string, current types.SourceVersion) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Report: types.ImpactReport{SourceFile: filePath},
	}

	// Step 1: Resolve the baseline through the fallback chain.
	out := e.resolver.Resolve(filePath, current.Text)
	result.Baseline = out.Resolution

	// Step 2: Equal-content fast path. Checked before any parsing; it is
	// the cheapest and most common outcome.
	if out.Empty || out.Text == current.Text {
		result.ParseStatus = types.ParseOK.String()
		result.Confidence = score.Evaluate(score.Input{FilePath: filePath, Current: current.Text})
		return result, nil
	}

	// Step 3: Inventory both versions.
	before := inventory.Collect(ctx, filePath, out.Text)
	after := inventory.Collect(ctx, filePath, current.Text)
	status := worstStatus(before.Status, after.Status)
	result.ParseStatus = status.String()

	// Step 4: Changed-line set for the scorer.
	delta := semdiff.ChangedLines(out.Text, current.Text)

	// Step 5: Semantic diff. A failed parse yields no ChangeSet; the
	// distinct status lets callers tell "no changes" from "couldn't tell".
	cs := types.NewChangeSet()
	if status != types.ParseFailed {
		cs = semdiff.Compute(before.Decls, after.Decls)
	}

	// Step 6: Downstream and test discovery, skipped entirely when no
	// symbol changed (deliberate short-circuit, not a degenerate case).
	var downstream, tests []string
	if !cs.Empty() {
		scanCtx := ctx
		if e.deps.Config.ScanTimeout > 0 {
			var cancel context.CancelFunc
			scanCtx, cancel = context.WithTimeout(ctx, e.deps.Config.ScanTimeout)
			defer cancel()
		}
		root := e.scanRoot(filePath)
		downstream = discovery.ScanDependents(scanCtx, e.deps.FS, root, filePath, cs.Symbols())
		tests = discovery.DiscoverTests(e.deps.FS, root, filePath)
	}

	// Step 7: Compose the report.
	result.Report = buildReport(filePath, cs, downstream, tests, status)

	// Step 8: Score confidence over the changed region.
	result.Confidence = score.Evaluate(score.Input{
		FilePath:        filePath,
		Current:         current.Text,
		Prior:           out.Text,
		Changed:         delta.Changed,
		Added:           delta.Added,
		Removed:         delta.Removed,
		Diagnostics:     e.deps.Diagnostics.DiagnosticsFor(filePath),
		Tests:           tests,
		BreakingSymbols: exportedSymbols(cs, out.Text),
		IsTestFile:      discovery.IsTestFile(filePath),
	})

	// Step 9: Move the session cache forward for snapshot baselines.
	e.resolver.Commit(filePath, current.Text, out)

	return result, nil
}

// scanRoot picks the directory tree to walk: the configured repo root when
// set, else the file's own directory.
func (e *Engine) scanRoot(filePath string) string {
	if e.deps.Config.RepoRoot != "" {
		return e.deps.Config.RepoRoot
	}
	return filepath.Dir(filePath)
}

// buildReport composes the immutable ImpactReport from the pipeline pieces.
//
// Implements: prd005-impact-report R1.1-R1.5.
func buildReport(filePath string, cs types.ChangeSet, downstream, tests []string, status types.ParseStatus) types.ImpactReport {
	report := types.ImpactReport{
		SourceFile:      filePath,
		Functions:       sorted(cs.Symbols()),
		DownstreamFiles: sorted(downstream),
		Tests:           sorted(tests),
	}

	if status == types.ParseFailed {
		report.Issues = append(report.Issues, types.Issue{Type: types.IssueParseFailure, Target: filePath})
	}
	for _, sym := range sorted(cs.Symbols()) {
		report.Issues = append(report.Issues, types.Issue{Type: types.IssueBreakingChange, Target: sym})
	}
	if !cs.Empty() && len(tests) == 0 {
		report.Issues = append(report.Issues, types.Issue{Type: types.IssueNoTestCoverage, Target: filePath})
	}

	return report
}

// exportedSymbols filters the change set down to names visible outside the
// file: capitalized names, or names an export-keyword line mentions.
func exportedSymbols(cs types.ChangeSet, beforeText string) []string {
	var exported []string
	for _, sym := range sorted(cs.Symbols()) {
		if isExported(sym, beforeText) {
			exported = append(exported, sym)
		}
	}
	return exported
}

func isExported(name, text string) bool {
	short := name
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		short = name[idx+1:]
	}
	if short == "" {
		return false
	}
	if unicode.IsUpper([]rune(short)[0]) {
		return true
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "export") && strings.Contains(line, short) {
			return true
		}
	}
	return false
}

func worstStatus(a, b types.ParseStatus) types.ParseStatus {
	if a == types.ParseFailed || b == types.ParseFailed {
		return types.ParseFailed
	}
	if a == types.ParseFallback || b == types.ParseFallback {
		return types.ParseFallback
	}
	return types.ParseOK
}

func sorted(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}
