// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fsys provides the failure-explicit filesystem collaborator the
// engine core depends on, with an OS-backed default implementation.
// Implements: prd007-collaborators R2.
package fsys

import (
	"os"
	"path/filepath"
)

// Filesystem is the read surface the engine uses. Methods return explicit
// errors; no failure escapes as a panic.
type Filesystem interface {
	// ReadFile returns the content of the file at path.
	ReadFile(path string) (string, error)

	// Exists reports whether path exists.
	Exists(path string) bool

	// Walk traverses the tree rooted at root depth-first, calling fn for
	// each file or directory. fn follows filepath.WalkFunc semantics.
	Walk(root string, fn filepath.WalkFunc) error
}

// OS is the production Filesystem backed by the os package.
type OS struct{}

// ReadFile reads the file at path from disk.
func (OS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Exists reports whether path exists on disk.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Walk traverses the tree rooted at root using filepath.Walk.
func (OS) Walk(root string, fn filepath.WalkFunc) error {
	return filepath.Walk(root, fn)
}
