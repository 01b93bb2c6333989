// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across go-impact packages.
// Implements: prd001-impact-interface R5 (shared types).
package types

import "encoding/json"

// Origin identifies where the current content of a file came from.
type Origin int

const (
	OriginBuffer Origin = iota // Unsaved editor buffer content
	OriginDisk                 // Content read from disk
)

// String returns the human-readable name of the origin.
func (o Origin) String() string {
	switch o {
	case OriginBuffer:
		return "buffer"
	case OriginDisk:
		return "disk"
	default:
		return "unknown"
	}
}

// SourceVersion is the current content of the analyzed file and where it
// came from. Created per analysis call and never mutated.
type SourceVersion struct {
	Text   string // Current file content
	Origin Origin // Where the content came from
}

// RefType identifies which baseline candidate produced the before-text.
//
// Implements: prd002-baseline-resolver R1.1.
type RefType int

const (
	RefNone      RefType = iota // No baseline could be resolved
	RefVCSHead                  // Content at the VCS HEAD commit
	RefMergeBase                // Content at the merge-base with a target ref
	RefVCSCommit                // Content at an explicit commit
	RefSnapshot                 // Session snapshot cache entry
)

// MarshalJSON encodes the ref type as its machine-readable name.
func (r RefType) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// String returns the machine-readable name of the ref type.
func (r RefType) String() string {
	switch r {
	case RefVCSHead:
		return "vcsHead"
	case RefMergeBase:
		return "vcsMergeBase"
	case RefVCSCommit:
		return "vcsCommit"
	case RefSnapshot:
		return "snapshot"
	default:
		return "none"
	}
}

// Availability reports whether a baseline was resolved at all.
type Availability int

const (
	Available   Availability = iota // A before-text was resolved
	Unavailable                     // Every fallback candidate was exhausted
)

// MarshalJSON encodes the availability state as its machine-readable name.
func (a Availability) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// String returns the machine-readable name of the availability state.
func (a Availability) String() string {
	if a == Available {
		return "available"
	}
	return "unavailable"
}

// Skip reasons recorded by the baseline resolver. Later stages never
// return an empty baseline without one of these attached.
//
// Implements: prd002-baseline-resolver R3.1-R3.4.
const (
	ReasonMergeBaseUnavailable = "merge_base_unavailable"
	ReasonHeadUnavailable      = "head_unavailable"
	ReasonFileNotTracked       = "file_not_tracked"
	ReasonFileNotAtRef         = "file_not_at_ref"
	ReasonGitDisabled          = "git_disabled"
	ReasonDiskUnreadable       = "disk_unreadable"
)

// BaselineResolution describes how the before-text was obtained, or why it
// could not be. Produced once per analysis attempt; immutable.
//
// Implements: prd002-baseline-resolver R1.
type BaselineResolution struct {
	RefType      RefType      `json:"refType"`          // Which candidate produced the baseline
	RefName      string       `json:"refName"`          // Ref name when VCS-derived (e.g. "HEAD", target branch)
	CommitID     string       `json:"commitId"`         // Resolved commit hash when VCS-derived
	Availability Availability `json:"availability"`     // Whether a baseline was resolved
	Reason       string       `json:"reason,omitempty"` // Why a fallback or skip occurred, if any
}
