// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/revdiff/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"revdiff", "diff"},
			expected: []string{"revdiff", "diff"},
		},
		{
			name:     "no duplicates",
			args:     []string{"revdiff", "diff", "--output", "text", "--titles"},
			expected: []string{"revdiff", "diff", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"revdiff", "diff", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"revdiff", "diff", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"revdiff", "diff", "--titles", "--strict", "--titles"},
			expected: []string{"revdiff", "diff", "--strict", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"revdiff", "diff", "--output=json", "--titles", "--output=text"},
			expected: []string{"revdiff", "diff", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"revdiff", "diff", "--output=json", "--output", "text"},
			expected: []string{"revdiff", "diff", "--output", "text"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"revdiff", "diff", "--id-field", "a", "--path", "x", "--id-field", "b", "--path", "y"},
			expected: []string{"revdiff", "diff", "--id-field", "b", "--path", "y"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"revdiff", "diff", "prev.json", "--output", "json", "--output", "text"},
			expected: []string{"revdiff", "diff", "prev.json", "--output", "text"},
		},
		{
			name:     "positional after boolean flag is not a value",
			args:     []string{"revdiff", "diff", "--strict", "prev.json", "curr.json"},
			expected: []string{"revdiff", "diff", "--strict", "prev.json", "curr.json"},
		},
		{
			name:     "stdin marker is positional",
			args:     []string{"revdiff", "stamp", "-o", "json", "-"},
			expected: []string{"revdiff", "stamp", "-o", "json", "-"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"revdiff", "diff", "-o", "json", "-o", "text"},
			expected: []string{"revdiff", "diff", "-o", "text"},
		},
		{
			name:     "different flags not affected",
			args:     []string{"revdiff", "diff", "--color", "--no-color"},
			expected: []string{"revdiff", "diff", "--color", "--no-color"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"revdiff", "diff", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"revdiff", "diff", "--output", "c"},
		},
		{
			name:     "everything after terminator kept",
			args:     []string{"revdiff", "diff", "--titles", "--", "--titles", "-x"},
			expected: []string{"revdiff", "diff", "--titles", "--", "--titles", "-x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args))
		})
	}
}

func TestDeduplicateFlagsWithPositionalAfterFlags(t *testing.T) {
	args := []string{"revdiff", "diff", "--output", "json", "prev.json", "--output", "text"}
	assert.Equal(t, []string{"revdiff", "diff", "prev.json", "--output", "text"}, deduplicateFlags(args))
}

func TestInjectConfigSet(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		insertIdx int
		configVal []string
		expected  []string
	}{
		{
			name:      "empty config returns args unchanged",
			args:      []string{"revdiff", "diff", "--titles"},
			insertIdx: 2,
			expected:  []string{"revdiff", "diff", "--titles"},
		},
		{
			name:      "single entry injected",
			args:      []string{"revdiff", "diff", "--titles"},
			insertIdx: 2,
			configVal: []string{"--strict"},
			expected:  []string{"revdiff", "diff", "--strict", "--titles"},
		},
		{
			name:      "multi-word entry split",
			args:      []string{"revdiff", "diff", "--titles"},
			insertIdx: 2,
			configVal: []string{"--output  text"},
			expected:  []string{"revdiff", "diff", "--output", "text", "--titles"},
		},
		{
			name:      "insert at index 3",
			args:      []string{"revdiff", "diff", "prev.json", "--titles"},
			insertIdx: 3,
			configVal: []string{"--strict", "--workers 4"},
			expected:  []string{"revdiff", "diff", "prev.json", "--strict", "--workers", "4", "--titles"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, injectConfigSet(tt.args, tt.configVal, tt.insertIdx))
		})
	}
}

func TestInjectConfigSetDoesNotAliasArgs(t *testing.T) {
	args := make([]string, 3, 10)
	copy(args, []string{"revdiff", "diff", "--titles"})
	out := injectConfigSet(args, []string{"--strict"}, 2)
	assert.Equal(t, []string{"revdiff", "diff", "--titles"}, args)
	assert.Equal(t, []string{"revdiff", "diff", "--strict", "--titles"}, out)
}

func TestProcessSetOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "revdiff.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
diff:
  defaults:
    - --titles
  review:
    - --output json
    - --show-changes
`), 0o600))
	t.Setenv("REVDIFF_CFG_FILE", cfg)
	_, err := config.Load()
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })

	assert.Equal(t,
		[]string{"revdiff", "diff", "--titles", "a.json", "b.json"},
		processSetOnly([]string{"revdiff", "diff", "a.json", "b.json"}))

	assert.Equal(t,
		[]string{"revdiff", "diff", "a.json", "--output", "json", "--show-changes", "b.json"},
		processSetOnly([]string{"revdiff", "diff", "a.json", "@review", "b.json"}))

	assert.Equal(t,
		[]string{"revdiff", "venn", "a.json", "b.json"},
		processSetOnly([]string{"revdiff", "venn", "a.json", "b.json"}))

	// Explicit flags win over the injected set.
	assert.Equal(t,
		[]string{"revdiff", "diff", "a.json", "--show-changes", "b.json", "--output", "yaml"},
		processCommandArgs([]string{"revdiff", "diff", "a.json", "@review", "b.json", "--output", "yaml"}))
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"revdiff", "--help"}, handleNakedCommand([]string{"revdiff"}))
	assert.Equal(t, []string{"revdiff", "log"}, handleNakedCommand([]string{"revdiff", "log"}))
}
