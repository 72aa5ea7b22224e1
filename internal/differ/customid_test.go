// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/revdiff/internal/model"
)

func withID(id string, props map[string]any) *model.Object {
	return model.New(props).WithCustom("id", id)
}

func TestDiffByExternalIDClassifies(t *testing.T) {
	t.Parallel()
	pa := withID("A", map[string]any{"name": "x"})
	pb := withID("B", map[string]any{"name": "same"})
	pc := withID("C", map[string]any{"name": "gone"})
	ca := withID("A", map[string]any{"name": "y"})
	cb := withID("B", map[string]any{"name": "same"})
	cd := withID("D", map[string]any{"name": "new"})

	d, err := DiffByExternalID([]*model.Object{pa, pb, pc}, []*model.Object{cd, ca, cb}, "id", nil)
	require.NoError(t, err)

	assert.Equal(t, []*model.Object{cd}, d.Added)
	assert.Equal(t, []*model.Object{ca}, d.Modified)
	assert.Equal(t, []*model.Object{cb}, d.Unchanged)
	assert.Equal(t, []*model.Object{pc}, d.Removed)
	assert.Equal(t, map[string]map[string]PropertyDelta{
		"A": {"name": {Old: "x", New: "y"}},
	}, d.ModifiedProperties)
	assert.Equal(t, "id", d.IDField)
	assert.Equal(t, "A", d.Key(ca))
}

func TestDiffByExternalIDExcludesIDFromHash(t *testing.T) {
	t.Parallel()
	// CustomData is compared here, but the id inside it never is.
	cfg := NewConfig(WithIgnore(model.GuidField, model.FragmentsField))

	p := withID("A", map[string]any{"name": "x"}).WithCustom("note", "n")
	c := withID("A", map[string]any{"name": "x"}).WithCustom("note", "n")

	d, err := DiffByExternalID([]*model.Object{p}, []*model.Object{c}, "id", &cfg)
	require.NoError(t, err)
	assert.Equal(t, []*model.Object{c}, d.Unchanged)
	assert.Contains(t, d.Config.PropertiesToIgnore, "CustomData.id")

	c2 := withID("A", map[string]any{"name": "x"}).WithCustom("note", "changed")
	d, err = DiffByExternalID([]*model.Object{p}, []*model.Object{c2}, "id", &cfg)
	require.NoError(t, err)
	assert.Equal(t, []*model.Object{c2}, d.Modified)
	assert.Contains(t, d.ModifiedProperties["A"], model.CustomDataField)
}

func TestDiffByExternalIDNumericIDs(t *testing.T) {
	t.Parallel()
	p := model.New(map[string]any{"v": 1}).WithCustom("id", 7.0)
	c := model.New(map[string]any{"v": 2}).WithCustom("id", 7.0)

	d, err := DiffByExternalID([]*model.Object{p}, []*model.Object{c}, "id", nil)
	require.NoError(t, err)
	assert.Len(t, d.Modified, 1)
	assert.Contains(t, d.ModifiedProperties, "7")
}

func TestDiffByExternalIDMissingID(t *testing.T) {
	t.Parallel()
	_, err := DiffByExternalID(nil, []*model.Object{withID("A", nil), model.New(nil)}, "id", nil)
	var mie *MissingIdentityError
	require.True(t, errors.As(err, &mie))
	assert.Equal(t, SideCurrent, mie.Side)
	assert.Equal(t, 1, mie.Index)
	assert.Equal(t, "CustomData.id", mie.Field)

	_, err = DiffByExternalID([]*model.Object{model.New(nil)}, nil, "id", nil)
	require.True(t, errors.As(err, &mie))
	assert.Equal(t, SidePrevious, mie.Side)

	_, err = DiffByExternalID(nil, nil, "", nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDiffByExternalIDDuplicates(t *testing.T) {
	t.Parallel()
	first := withID("A", map[string]any{"v": 1})
	second := withID("A", map[string]any{"v": 2})
	p := withID("A", map[string]any{"v": 2})

	d, err := DiffByExternalID([]*model.Object{p}, []*model.Object{first, second}, "id", nil)
	require.NoError(t, err)
	assert.Equal(t, []*model.Object{second}, d.Unchanged)
	assert.Empty(t, d.Modified)
	require.Len(t, d.Warnings, 1)

	cfg := NewConfig(WithStrict(true))
	_, err = DiffByExternalID([]*model.Object{p}, []*model.Object{first, second}, "id", &cfg)
	var amb *AmbiguousMatchError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, "A", amb.Identity)
}

func TestDiffByExternalIDParallelMatchesSequential(t *testing.T) {
	t.Parallel()
	var previous, current []*model.Object
	for i := 0; i < 50; i++ {
		id := string(rune('a'+i%26)) + string(rune('a'+i/26))
		previous = append(previous, withID(id, map[string]any{"v": i}))
		if i%3 != 0 {
			current = append(current, withID(id, map[string]any{"v": i + i%2}))
		}
	}

	seq, err := DiffByExternalID(previous, current, "id", nil)
	require.NoError(t, err)
	cfg := NewConfig(WithWorkers(6))
	par, err := DiffByExternalID(previous, current, "id", &cfg)
	require.NoError(t, err)

	assert.Equal(t, seq.Modified, par.Modified)
	assert.Equal(t, seq.Unchanged, par.Unchanged)
	assert.Equal(t, seq.Removed, par.Removed)
	assert.Equal(t, seq.ModifiedProperties, par.ModifiedProperties)
}

func TestDiffByExternalIDHasherFailure(t *testing.T) {
	t.Parallel()
	e := New(failingHasher{})
	_, err := e.DiffByExternalID([]*model.Object{withID("A", nil)}, []*model.Object{withID("A", nil)}, "id", nil)
	assert.ErrorContains(t, err, "hasher down")
}

func TestDiffByExternalIDLargeIntegers(t *testing.T) {
	t.Parallel()
	p := withID("A", map[string]any{"ElementId": int64(9007199254740993)})
	c := withID("A", map[string]any{"ElementId": int64(9007199254740992)})

	d, err := DiffByExternalID([]*model.Object{p}, []*model.Object{c}, "id", nil)
	require.NoError(t, err)
	assert.Equal(t, []*model.Object{c}, d.Modified)
	assert.Empty(t, d.Unchanged)
	assert.Contains(t, d.ModifiedProperties["A"], "ElementId")
}

func TestDiffByExternalIDIgnoresNestedGuids(t *testing.T) {
	t.Parallel()
	p := withID("A", map[string]any{"StartNode": map[string]any{"BHoM_Guid": "g-old", "X": 0}})
	c := withID("A", map[string]any{"StartNode": map[string]any{"BHoM_Guid": "g-new", "X": 0}})

	d, err := DiffByExternalID([]*model.Object{p}, []*model.Object{c}, "id", nil)
	require.NoError(t, err)
	assert.Equal(t, []*model.Object{c}, d.Unchanged)
	assert.Empty(t, d.Modified)
	assert.Nil(t, d.ModifiedProperties)

	c2 := withID("A", map[string]any{"StartNode": map[string]any{"BHoM_Guid": "g-new", "X": 1}})
	d, err = DiffByExternalID([]*model.Object{p}, []*model.Object{c2}, "id", nil)
	require.NoError(t, err)
	assert.Equal(t, []*model.Object{c2}, d.Modified)
}
