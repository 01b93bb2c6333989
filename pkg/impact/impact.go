// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package impact defines the public interface for go-impact, a change impact
// analysis library for single-file edits.
// Implements: prd001-impact-interface R1, R2, R3, R6;
//
//	docs/ARCHITECTURE § Impact Interface.
package impact

import (
	"context"
	"errors"
	"time"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// Error types for the Analyzer API.
//
// Implements: prd001-impact-interface R6.1-R6.2.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrCanceled      = errors.New("analysis canceled")
)

// Mode selects what baseline the analysis compares against.
type Mode string

const (
	ModeLocal Mode = "local" // Compare to VCS HEAD (uncommitted work)
	ModePR    Mode = "pr"    // Compare to the merge-base with a target ref
)

// Config configures an Analyzer instance.
//
// Implements: prd001-impact-interface R1.1-R1.8.
type Config struct {
	WorkDir      string        // Repository root (required)
	BaselineMode Mode          // local or pr (default local)
	TargetRef    string        // Merge-base target for pr mode (default "main")
	GitEnabled   bool          // Read baselines from version control
	CacheEnabled bool          // Keep session snapshot and ref caches
	ScanTimeout  time.Duration // Bound on each discovery walk (default 10s)
	Diagnostics  string        // Compiler/linter output in file:line:col format, "" = none
}

// Analysis is the outcome of one Analyze call.
//
// Implements: prd001-impact-interface R3.1-R3.4.
type Analysis struct {
	Report      types.ImpactReport     // Changed symbols, downstream files, tests, issues
	Confidence  types.ConfidenceResult // Aggregated 0-100 score with per-metric breakdown
	Baseline    types.BaselineResolution
	ParseStatus string // ok, fallback, or failed
}

// Analyzer analyzes the impact of single-file edits against a resolved
// baseline. Implementations are safe for concurrent use across distinct
// files; the session caches are shared and internally synchronized.
//
// Implements: prd001-impact-interface R2.1-R2.3.
type Analyzer interface {
	// Analyze resolves a baseline for the file, computes the semantic diff
	// between baseline and current content, discovers downstream files and
	// tests, and scores confidence in the change.
	Analyze(ctx context.Context, filePath string, current types.SourceVersion) (*Analysis, error)

	// ClearCaches drops the session baseline caches. Eviction is explicit;
	// nothing expires on its own.
	ClearCaches()
}
