// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/revdiff/internal/model"
)

func TestSHA256IsDeterministicAndOrderFree(t *testing.T) {
	t.Parallel()
	a := model.New(map[string]any{"Name": "x", "Size": 3, "Tags": []string{"p", "q"}})
	b := model.New(map[string]any{"Tags": []any{"p", "q"}, "Size": 3.0, "Name": "x"})

	ha, err := SHA256{}.Hash(a, nil)
	require.NoError(t, err)
	hb, err := SHA256{}.Hash(b, nil)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.Len(t, ha, 64)
}

func TestSHA256IgnoresScrubbedNames(t *testing.T) {
	t.Parallel()
	ignore := []string{model.GuidField, model.CustomDataField, model.FragmentsField}

	a := model.New(map[string]any{"Name": "x"}).WithHash("h1", "").WithCustom("id", "A")
	a.Guid = "g1"
	b := model.New(map[string]any{"Name": "x"}).WithHash("h9", "h1").WithCustom("id", "B")
	b.Guid = "g2"

	ha, err := SHA256{}.Hash(a, ignore)
	require.NoError(t, err)
	hb, err := SHA256{}.Hash(b, ignore)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	hc, err := SHA256{}.Hash(b, nil)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
}

func TestSHA256HashesOpaqueValues(t *testing.T) {
	t.Parallel()
	h1, err := SHA256{}.Hash("text", nil)
	require.NoError(t, err)
	h2, err := SHA256{}.Hash("text", nil)
	require.NoError(t, err)
	h3, err := SHA256{}.Hash(42, nil)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)

	m1, err := SHA256{}.Hash(map[string]any{"a": 1, "skip": 2}, []string{"skip"})
	require.NoError(t, err)
	m2, err := SHA256{}.Hash(map[string]any{"a": 1.0}, nil)
	require.NoError(t, err)
	assert.Equal(t, m1, m2)
}

func TestSHA256RejectsUnencodable(t *testing.T) {
	t.Parallel()
	_, err := SHA256{}.Hash(make(chan int), nil)
	assert.Error(t, err)
}

func TestCanonicalSortsKeysAndKeepsHTML(t *testing.T) {
	t.Parallel()
	got, err := Canonical(map[string]any{"b": "<x>", "a": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":"<x>"}`, string(got))
}

func TestPrepareCopiesAndScrubs(t *testing.T) {
	t.Parallel()
	orig := model.New(map[string]any{"Name": "x", "Size": 2}).WithHash("h1", "h0").WithCustom("id", "A")

	out, err := Prepare([]*model.Object{orig}, []string{model.CustomDataField, model.FragmentsField})
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := out[0]
	assert.NotSame(t, orig, p)
	assert.Nil(t, p.Hash)
	assert.Nil(t, p.CustomData)
	assert.Equal(t, 2.0, p.Properties["Size"])

	// The source is untouched.
	assert.NotNil(t, orig.Hash)
	assert.Equal(t, "A", orig.CustomData["id"])

	_, err = Prepare([]*model.Object{nil}, nil)
	assert.Error(t, err)
}
