// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestRender(t *testing.T) {
	sub := &cli.Command{
		Name:      "diff",
		Usage:     "diff two revisions",
		UsageText: "revdiff diff PREV CURR",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: "filter objects"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, sub, []Example{{Command: "revdiff diff a.json b.json", Description: "Two files."}}))

	out := buf.String()
	assert.Contains(t, out, "# revdiff diff")
	assert.Contains(t, out, "revdiff diff PREV CURR")
	assert.Contains(t, out, "| `--filter, -f` | filter objects |")
	assert.Contains(t, out, "Two files.")
}

func TestLoadExamples(t *testing.T) {
	dir := t.TempDir()

	ex, err := loadExamples(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, ex)

	p := filepath.Join(dir, "examples.yaml")
	require.NoError(t, os.WriteFile(p, []byte("log:\n  - command: revdiff log --db r.db\n    description: List.\n"), 0o600))
	ex, err = loadExamples(p)
	require.NoError(t, err)
	assert.Equal(t, "revdiff log --db r.db", ex["log"][0].Command)

	require.NoError(t, os.WriteFile(p, []byte("log: [unclosed"), 0o600))
	_, err = loadExamples(p)
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("REVDIFF_CFG_FILE", "")
	os.Unsetenv("REVDIFF_CFG_FILE")

	require.NoError(t, generate(context.Background(), dir))
	data, err := os.ReadFile(filepath.Join(dir, "commands", "diff.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "--strict")
}
