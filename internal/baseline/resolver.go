// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package baseline resolves the trustworthy "before" version of a file from
// an ordered chain of candidates: VCS reference, session snapshot, disk.
// Implements: prd002-baseline-resolver R1, R2, R3, R4;
//
//	docs/ARCHITECTURE § Baseline Resolution.
package baseline

import (
	"strings"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// Mode selects what the baseline compares against.
type Mode string

const (
	ModeLocal Mode = "local" // Compare to VCS HEAD
	ModePR    Mode = "pr"    // Compare to the merge-base with a target ref
)

// VersionSource reads file content from version-control references. All
// methods report unavailability by zero value, never by error.
type VersionSource interface {
	IsTracked(path string) bool
	CurrentRef() string
	MergeBase(ref string) string
	ReadAtRef(path, ref string) (string, bool)
}

// FileReader reads current file content from disk.
type FileReader interface {
	ReadFile(path string) (string, error)
}

// Config configures the resolver.
type Config struct {
	RepoRoot     string // Repository root, part of the ref-cache key
	Mode         Mode   // local or pr
	TargetRef    string // Merge-base target for pr mode
	GitEnabled   bool   // When false, VCS candidates are skipped entirely
	CacheEnabled bool   // When false, the session snapshot cache is skipped
}

// Outcome is a resolved baseline: the resolution metadata, the before-text,
// and whether the analysis can stop immediately (equal content or no
// baseline at all).
type Outcome struct {
	Resolution types.BaselineResolution
	Text       string
	Empty      bool
}

// attempt is the tagged result of one candidate: either a resolved outcome
// or a skip with a machine-readable reason.
type attempt struct {
	ok     bool
	text   string
	res    types.BaselineResolution
	reason string
}

// Resolver orchestrates the ordered fallback chain over a VersionSource, a
// session snapshot cache, and disk. One long-lived instance owns both
// caches; they live until ClearCaches.
type Resolver struct {
	cfg       Config
	vcs       VersionSource // nil when git integration is disabled
	fs        FileReader
	snapshots *snapshotCache
	refs      *refCache
}

// New creates a Resolver. vcs may be nil; disk and snapshot candidates
// still apply.
func New(cfg Config, vcs VersionSource, fs FileReader) *Resolver {
	return &Resolver{
		cfg:       cfg,
		vcs:       vcs,
		fs:        fs,
		snapshots: newSnapshotCache(),
		refs:      newRefCache(),
	}
}

// Resolve tries the baseline candidates in fixed order, stopping at the
// first one that yields text:
//
//  1. pr mode: content at the merge-base of HEAD and the target ref;
//     on failure fall back to HEAD recording merge_base_unavailable.
//  2. content at VCS HEAD (requires the file be tracked).
//  3. session snapshot for this path.
//  4. disk content, seeding the snapshot cache; equal content returns an
//     empty outcome immediately.
//  5. the current text as its own baseline, refType none, unavailable.
//
// Every skipped candidate records its reason on the final resolution.
//
// Implements: prd002-baseline-resolver R2.1-R2.7.
func (r *Resolver) Resolve(path, current string) Outcome {
	var reasons []string

	if r.cfg.GitEnabled && r.vcs != nil {
		if a := r.tryVCS(path, &reasons); a.ok {
			a.res.Reason = joinReasons(reasons)
			return Outcome{Resolution: a.res, Text: a.text}
		}
	} else {
		reasons = append(reasons, types.ReasonGitDisabled)
	}

	if r.cfg.CacheEnabled {
		if snap, ok := r.snapshots.get(path); ok {
			return Outcome{
				Resolution: types.BaselineResolution{
					RefType:      types.RefSnapshot,
					Availability: types.Available,
					Reason:       joinReasons(reasons),
				},
				Text: snap,
			}
		}
	}

	if text, err := r.fs.ReadFile(path); err == nil {
		if r.cfg.CacheEnabled {
			r.snapshots.put(path, text)
		}
		return Outcome{
			Resolution: types.BaselineResolution{
				RefType:      types.RefSnapshot,
				Availability: types.Available,
				Reason:       joinReasons(reasons),
			},
			Text:  text,
			Empty: text == current,
		}
	}
	reasons = append(reasons, types.ReasonDiskUnreadable)

	// Last resort: the current text becomes its own baseline so the next
	// analysis of this path has something to diff against.
	if r.cfg.CacheEnabled {
		r.snapshots.put(path, current)
	}
	return Outcome{
		Resolution: types.BaselineResolution{
			RefType:      types.RefNone,
			Availability: types.Unavailable,
			Reason:       joinReasons(reasons),
		},
		Text:  current,
		Empty: true,
	}
}

// tryVCS runs the VCS candidates (merge-base, then HEAD) behind the
// resolved-ref cache. A changed HEAD commit id forces re-resolution.
func (r *Resolver) tryVCS(path string, reasons *[]string) attempt {
	head := r.vcs.CurrentRef()
	if head == "" {
		// No resolvable HEAD (unborn branch, corrupt repo); neither VCS
		// candidate can run.
		*reasons = append(*reasons, types.ReasonHeadUnavailable)
		return attempt{}
	}

	key := refKey{
		repoRoot:  r.cfg.RepoRoot,
		filePath:  path,
		mode:      r.cfg.Mode,
		targetRef: r.cfg.TargetRef,
	}
	if e, ok := r.refs.get(key, head); ok {
		return attempt{ok: true, text: e.text, res: e.resolution}
	}

	if r.cfg.Mode == ModePR {
		if a := r.tryMergeBase(path); a.ok {
			r.refs.put(key, refEntry{headID: head, text: a.text, resolution: a.res})
			return a
		}
		*reasons = append(*reasons, types.ReasonMergeBaseUnavailable)
	}

	a := r.tryHead(path, head)
	if a.ok {
		r.refs.put(key, refEntry{headID: head, text: a.text, resolution: a.res})
	} else {
		*reasons = append(*reasons, a.reason)
	}
	return a
}

// tryMergeBase resolves the file at the merge-base of HEAD and the target
// ref. Any failure along the way is a single skip; there are no retries.
func (r *Resolver) tryMergeBase(path string) attempt {
	mb := r.vcs.MergeBase(r.cfg.TargetRef)
	if mb == "" {
		return attempt{reason: types.ReasonMergeBaseUnavailable}
	}

	text, ok := r.vcs.ReadAtRef(path, mb)
	if !ok {
		return attempt{reason: types.ReasonMergeBaseUnavailable}
	}

	return attempt{
		ok:   true,
		text: text,
		res: types.BaselineResolution{
			RefType:      types.RefMergeBase,
			RefName:      r.cfg.TargetRef,
			CommitID:     mb,
			Availability: types.Available,
		},
	}
}

// tryHead resolves the file at VCS HEAD. Untracked files skip with
// file_not_tracked; tracked files missing at HEAD (renamed or newly added)
// skip with file_not_at_ref.
func (r *Resolver) tryHead(path, head string) attempt {
	if !r.vcs.IsTracked(path) {
		return attempt{reason: types.ReasonFileNotTracked}
	}

	text, ok := r.vcs.ReadAtRef(path, "HEAD")
	if !ok {
		return attempt{reason: types.ReasonFileNotAtRef}
	}

	return attempt{
		ok:   true,
		text: text,
		res: types.BaselineResolution{
			RefType:      types.RefVCSHead,
			RefName:      "HEAD",
			CommitID:     head,
			Availability: types.Available,
		},
	}
}

// Commit records the result of a successful non-empty analysis. A snapshot
// baseline moves the session cache forward to the current text so the next
// analysis diffs against this save; VCS-derived baselines never touch the
// cache (the VCS reference, not the cache, is authoritative in that mode).
//
// Implements: prd002-baseline-resolver R4.3-R4.4.
func (r *Resolver) Commit(path, current string, out Outcome) {
	if out.Empty || !r.cfg.CacheEnabled {
		return
	}
	if out.Resolution.RefType == types.RefSnapshot {
		r.snapshots.put(path, current)
	}
}

// ClearCaches drops both session caches. Eviction is explicit and
// caller-driven; nothing expires on its own.
func (r *Resolver) ClearCaches() {
	r.snapshots.clear()
	r.refs.clear()
}

func joinReasons(reasons []string) string {
	return strings.Join(reasons, ";")
}
