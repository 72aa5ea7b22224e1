// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("REVDIFF_CACHE_DIR", customDir)

	result, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, customDir, result)

	t.Setenv("REVDIFF_CACHE_DIR", "")
	result, ok = Dir()
	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "revdiff", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("REVDIFF_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	t.Setenv("REVDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("REVDIFF_CACHE", "1")

	subdirs := []string{"s3", "bucket"}
	key := "s3://bucket/snap.json@\"etag\""
	body := []byte("  RDENC1\x00binary body\n")

	_, ok := Read(subdirs, key)
	assert.False(t, ok)

	require.NoError(t, Write(subdirs, key, body))

	entry, ok := Read(subdirs, key)
	require.True(t, ok)
	assert.Equal(t, body, entry.Data, "bodies are returned byte for byte")
	assert.Equal(t, key, entry.Key)
	assert.Equal(t, encodeKey(key), entry.EncodedKey)
	assert.Equal(t, filepath.Base(entry.Path), entry.EncodedKey)

	p, exists := EntryPath(subdirs, key)
	assert.True(t, exists)
	assert.Equal(t, entry.Path, p)

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(p), ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestDisabledCacheIsInert(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REVDIFF_CACHE_DIR", dir)
	t.Setenv("REVDIFF_CACHE", "false")

	require.NoError(t, Write(nil, "k", []byte("v")))
	_, ok := Read(nil, "k")
	assert.False(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REVDIFF_CACHE_DIR", dir)
	t.Setenv("REVDIFF_CACHE", "1")

	require.NoError(t, Write([]string{"s3"}, "old", []byte("1")))
	require.NoError(t, Write([]string{"s3"}, "new", []byte("2")))

	oldPath, _ := EntryPath([]string{"s3"}, "old")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	require.NoError(t, Purge(0))
	assert.FileExists(t, oldPath)

	require.NoError(t, Purge(24))
	assert.NoFileExists(t, oldPath)
	_, ok := Read([]string{"s3"}, "new")
	assert.True(t, ok)
}

func TestPurgeMissingDir(t *testing.T) {
	t.Setenv("REVDIFF_CACHE_DIR", filepath.Join(t.TempDir(), "absent"))
	assert.NoError(t, Purge(1))
}

func TestEncodeKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", encodeKey(""))
	assert.Len(t, encodeKey("anything"), 64)
}

func TestSnapshotKeepsNewestVersion(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REVDIFF_CACHE_DIR", dir)
	t.Setenv("REVDIFF_CACHE", "1")

	loc := "s3://bucket/model/rev.json"
	_, ok := Snapshot(loc, `"v1"`)
	assert.False(t, ok)

	require.NoError(t, StoreSnapshot(loc, `"v1"`, []byte("one")))
	got, ok := Snapshot(loc, `"v1"`)
	require.True(t, ok)
	assert.Equal(t, []byte("one"), got)

	require.NoError(t, StoreSnapshot(loc, `"v2"`, []byte("two")))
	_, ok = Snapshot(loc, `"v1"`)
	assert.False(t, ok, "older versions are evicted")
	got, ok = Snapshot(loc, `"v2"`)
	require.True(t, ok)
	assert.Equal(t, []byte("two"), got)

	entries, err := os.ReadDir(filepath.Join(append([]string{dir}, snapshotDirs(loc)...)...))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// Other locations are untouched.
	require.NoError(t, StoreSnapshot("s3://bucket/other.json", `"v1"`, []byte("x")))
	_, ok = Snapshot(loc, `"v2"`)
	assert.True(t, ok)
}

func TestSnapshotDisabled(t *testing.T) {
	t.Setenv("REVDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("REVDIFF_CACHE", "0")

	require.NoError(t, StoreSnapshot("s3://b/k", "e", []byte("x")))
	_, ok := Snapshot("s3://b/k", "e")
	assert.False(t, ok)
}
