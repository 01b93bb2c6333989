// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-impact-interface R4;
//
//	docs/ARCHITECTURE § Impact Interface.
package impact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/petar-djukic/go-impact/internal/baseline"
	"github.com/petar-djukic/go-impact/internal/diagnostics"
	"github.com/petar-djukic/go-impact/internal/engine"
	"github.com/petar-djukic/go-impact/internal/fsys"
	"github.com/petar-djukic/go-impact/internal/vcs"
	"github.com/petar-djukic/go-impact/pkg/types"
)

const (
	defaultTargetRef   = "main"
	defaultScanTimeout = 10 * time.Second
)

// New validates the config, opens the repository when git integration is
// enabled, and returns a ready-to-use Analyzer. A missing repository is not
// an error: the baseline chain falls through to its snapshot and disk
// candidates.
//
// Implements: prd001-impact-interface R4.1-R4.3.
func New(cfg Config) (Analyzer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	var source baseline.VersionSource
	gitEnabled := cfg.GitEnabled
	if gitEnabled {
		client, err := vcs.Open(vcs.Config{WorkDir: cfg.WorkDir})
		if errors.Is(err, vcs.ErrNoRepo) {
			gitEnabled = false
		} else if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		} else {
			source = client
		}
	}

	var provider diagnostics.Provider = diagnostics.None{}
	if cfg.Diagnostics != "" {
		provider = diagnostics.ParseText(cfg.Diagnostics)
	}

	eng := engine.New(engine.Deps{
		VCS:         source,
		FS:          fsys.OS{},
		Diagnostics: provider,
		Config: engine.Config{
			RepoRoot:     cfg.WorkDir,
			Mode:         baseline.Mode(cfg.BaselineMode),
			TargetRef:    cfg.TargetRef,
			GitEnabled:   gitEnabled,
			CacheEnabled: cfg.CacheEnabled,
			ScanTimeout:  cfg.ScanTimeout,
		},
	})

	return &analyzerAdapter{engine: eng}, nil
}

// analyzerAdapter adapts internal/engine.Engine to the public Analyzer
// interface.
type analyzerAdapter struct {
	engine *engine.Engine
}

func (a *analyzerAdapter) Analyze(ctx context.Context, filePath string, current types.SourceVersion) (*Analysis, error) {
	r, err := a.engine.Analyze(ctx, filePath, current)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrCanceled, err)
		}
		return nil, err
	}
	return &Analysis{
		Report:      r.Report,
		Confidence:  r.Confidence,
		Baseline:    r.Baseline,
		ParseStatus: r.ParseStatus,
	}, nil
}

func (a *analyzerAdapter) ClearCaches() {
	a.engine.ClearCaches()
}

// validateConfig checks that required fields are present and coherent.
//
// Implements: prd001-impact-interface R1.7-R1.8.
func validateConfig(cfg Config) error {
	if cfg.WorkDir == "" {
		return fmt.Errorf("WorkDir is required")
	}
	if info, err := os.Stat(cfg.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("WorkDir %q does not exist or is not a directory", cfg.WorkDir)
	}
	switch cfg.BaselineMode {
	case "", ModeLocal, ModePR:
	default:
		return fmt.Errorf("BaselineMode %q is not local or pr", cfg.BaselineMode)
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.BaselineMode == "" {
		cfg.BaselineMode = ModeLocal
	}
	if cfg.TargetRef == "" {
		cfg.TargetRef = defaultTargetRef
	}
	if cfg.ScanTimeout == 0 {
		cfg.ScanTimeout = defaultScanTimeout
	}
}
