// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ValidRepo(t *testing.T) {
	dir := initTestRepo(t)

	client, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestOpen_NotARepo(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(Config{WorkDir: dir})
	assert.ErrorIs(t, err, ErrNoRepo)
}

func TestIsTracked(t *testing.T) {
	dir := initTestRepo(t)
	client, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	assert.True(t, client.IsTracked("main.go"))
	assert.True(t, client.IsTracked(filepath.Join(dir, "main.go")))
	assert.False(t, client.IsTracked("missing.go"))

	// Present on disk but never added.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.go"), []byte("package main\n"), 0o644))
	assert.False(t, client.IsTracked("untracked.go"))
}

func TestCurrentRef(t *testing.T) {
	dir := initTestRepo(t)
	client, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	first := client.CurrentRef()
	assert.Len(t, first, 40)

	addFileAndCommit(t, dir, "other.go", "package main\n", "add other")
	assert.NotEqual(t, first, client.CurrentRef())
}

func TestCurrentRef_EmptyRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	client, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	assert.Empty(t, client.CurrentRef())
}

func TestReadAtRef(t *testing.T) {
	dir := initTestRepo(t)
	client, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	text, ok := client.ReadAtRef("main.go", "HEAD")
	require.True(t, ok)
	assert.Equal(t, "package main\n\nfunc main() {}\n", text)

	// Working-tree edits must not leak into reads at HEAD.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() { println(1) }\n"), 0o644))
	text, ok = client.ReadAtRef("main.go", "HEAD")
	require.True(t, ok)
	assert.Equal(t, "package main\n\nfunc main() {}\n", text)
}

func TestReadAtRef_MissingFile(t *testing.T) {
	dir := initTestRepo(t)
	client, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	_, ok := client.ReadAtRef("missing.go", "HEAD")
	assert.False(t, ok)
}

func TestReadAtRef_BadRef(t *testing.T) {
	dir := initTestRepo(t)
	client, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	_, ok := client.ReadAtRef("main.go", "no-such-branch")
	assert.False(t, ok)
}

func TestMergeBase(t *testing.T) {
	dir := initTestRepo(t)
	client, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	base := client.CurrentRef()

	// Branch off at the current commit, then advance the original branch;
	// the fork point is the merge-base.
	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	head, err := r.Head()
	require.NoError(t, err)
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature"), head.Hash())
	require.NoError(t, r.Storer.SetReference(ref))

	addFileAndCommit(t, dir, "extra.go", "package main\n", "advance main")

	mb := client.MergeBase("feature")
	assert.Equal(t, base, mb)
}

func TestMergeBase_UnknownRef(t *testing.T) {
	dir := initTestRepo(t)
	client, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	assert.Empty(t, client.MergeBase("no-such-branch"))
}

// initTestRepo creates a repository with one committed file.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	mainGo := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(mainGo, []byte("package main\n\nfunc main() {}\n"), 0o644))

	_, err = wt.Add("main.go")
	require.NoError(t, err)

	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}

// addFileAndCommit adds a file and creates a commit with the given message.
func addFileAndCommit(t *testing.T, dir, name, content, msg string) {
	t.Helper()

	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	_, err = wt.Add(name)
	require.NoError(t, err)

	_, err = wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
}
