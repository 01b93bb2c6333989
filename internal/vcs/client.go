// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package vcs provides read-only access to file content at version-control
// references for baseline resolution.
// Implements: prd007-collaborators R1;
//
//	docs/ARCHITECTURE § VCS Integration.
package vcs

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoRepo is returned when the working directory is not a git repository.
var ErrNoRepo = errors.New("not a git repository")

// Config configures the VCS client.
type Config struct {
	WorkDir string // Repository working directory
}

// Client wraps a go-git repository for the read operations the baseline
// resolver needs. Every query reports failure by returning its zero value
// with ok=false; no query panics or surfaces transport errors to callers.
type Client struct {
	repo *gogit.Repository
	cfg  Config
}

// Open opens an existing git repository at the configured work directory.
// Returns ErrNoRepo if the directory is not a git repository.
//
// Implements: prd007-collaborators R1.1.
func Open(cfg Config) (*Client, error) {
	r, err := gogit.PlainOpen(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRepo, err)
	}
	return &Client{repo: r, cfg: cfg}, nil
}

// IsTracked reports whether the file at path is present in the index.
// Untracked and unknown files both return false.
//
// Implements: prd007-collaborators R1.2.
func (c *Client) IsTracked(path string) bool {
	rel, ok := c.relPath(path)
	if !ok {
		return false
	}

	idx, err := c.repo.Storer.Index()
	if err != nil {
		return false
	}

	_, err = idx.Entry(rel)
	return err == nil
}

// CurrentRef returns the commit hash HEAD points at, or "" when HEAD cannot
// be resolved (empty repository, detached corruption).
//
// Implements: prd007-collaborators R1.3.
func (c *Client) CurrentRef() string {
	head, err := c.repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}

// MergeBase returns the hash of the merge-base between HEAD and ref, or ""
// when either side cannot be resolved or no common ancestor exists.
//
// Implements: prd007-collaborators R1.4.
func (c *Client) MergeBase(ref string) string {
	head, err := c.repo.Head()
	if err != nil {
		return ""
	}

	headCommit, err := c.repo.CommitObject(head.Hash())
	if err != nil {
		return ""
	}

	targetHash, err := c.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return ""
	}

	targetCommit, err := c.repo.CommitObject(*targetHash)
	if err != nil {
		return ""
	}

	bases, err := headCommit.MergeBase(targetCommit)
	if err != nil || len(bases) == 0 {
		return ""
	}
	return bases[0].Hash.String()
}

// ReadAtRef returns the content of the file at the given ref ("HEAD", a
// branch name, or a commit hash). ok=false when the ref does not resolve or
// the file does not exist at that commit.
//
// Implements: prd007-collaborators R1.5.
func (c *Client) ReadAtRef(path, ref string) (string, bool) {
	rel, relOK := c.relPath(path)
	if !relOK {
		return "", false
	}

	hash, err := c.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", false
	}

	commit, err := c.repo.CommitObject(*hash)
	if err != nil {
		return "", false
	}

	f, err := commit.File(rel)
	if err != nil {
		return "", false
	}

	content, err := f.Contents()
	if err != nil {
		return "", false
	}
	return content, true
}

// relPath converts an absolute or workdir-relative path into the
// slash-separated repo-relative form git object trees use.
func (c *Client) relPath(path string) (string, bool) {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path), true
	}
	rel, err := filepath.Rel(c.cfg.WorkDir, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
