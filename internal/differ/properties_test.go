// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/revdiff/internal/model"
)

func TestDifferentProperties(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		previous *model.Object
		current  *model.Object
		cfg      *Config
		want     map[string]PropertyDelta
	}{
		{
			name:     "identical",
			previous: model.New(map[string]any{"a": 1, "b": []any{"x"}}),
			current:  model.New(map[string]any{"a": 1.0, "b": []string{"x"}}),
			want:     map[string]PropertyDelta{},
		},
		{
			name:     "scalar change",
			previous: model.New(map[string]any{"a": 1, "b": "same"}),
			current:  model.New(map[string]any{"a": 2, "b": "same"}),
			want:     map[string]PropertyDelta{"a": {Old: 1.0, New: 2.0}},
		},
		{
			name:     "added and removed",
			previous: model.New(map[string]any{"gone": true}),
			current:  model.New(map[string]any{"new": "v"}),
			want: map[string]PropertyDelta{
				"gone": {Old: true, New: nil},
				"new":  {Old: nil, New: "v"},
			},
		},
		{
			name:     "nested change is reported at the top level",
			previous: model.New(map[string]any{"geo": map[string]any{"x": 1, "y": 2}}),
			current:  model.New(map[string]any{"geo": map[string]any{"x": 1, "y": 3}}),
			want: map[string]PropertyDelta{"geo": {
				Old: map[string]any{"x": 1.0, "y": 2.0},
				New: map[string]any{"x": 1.0, "y": 3.0},
			}},
		},
		{
			name:     "default ignores",
			previous: model.New(map[string]any{"a": 1}).WithCustom("k", "1").WithHash("h1", ""),
			current:  model.New(map[string]any{"a": 1}).WithCustom("k", "2").WithHash("h2", "h1"),
			want:     map[string]PropertyDelta{},
		},
		{
			name:     "configured ignore",
			previous: model.New(map[string]any{"a": 1, "stamp": "mon"}),
			current:  model.New(map[string]any{"a": 1, "stamp": "tue"}),
			cfg:      ptr(NewConfig(WithAdditionalIgnore("stamp"))),
			want:     map[string]PropertyDelta{},
		},
		{
			name:     "dotted ignore keeps siblings",
			previous: model.New(map[string]any{"geo": map[string]any{"x": 1, "t": "a"}}),
			current:  model.New(map[string]any{"geo": map[string]any{"x": 2, "t": "b"}}),
			cfg:      ptr(NewConfig(WithAdditionalIgnore("geo.t"))),
			want: map[string]PropertyDelta{"geo": {
				Old: map[string]any{"x": 1.0},
				New: map[string]any{"x": 2.0},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DifferentProperties(tt.previous, tt.current, tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDifferentPropertiesRequiresBothObjects(t *testing.T) {
	t.Parallel()
	_, err := DifferentProperties(nil, model.New(nil), nil)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = DifferentProperties(model.New(nil), nil, nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func ptr[T any](v T) *T { return &v }

func TestDifferentPropertiesLargeIntegers(t *testing.T) {
	t.Parallel()
	previous := model.New(map[string]any{"ElementId": int64(9007199254740993)})
	current := model.New(map[string]any{"ElementId": int64(9007199254740992)})

	got, err := DifferentProperties(previous, current, nil)
	require.NoError(t, err)
	require.Contains(t, got, "ElementId")
	assert.NotEqual(t, got["ElementId"].Old, got["ElementId"].New)

	same, err := DifferentProperties(previous, previous.Clone(), nil)
	require.NoError(t, err)
	assert.Empty(t, same)
}

func TestDifferentPropertiesIgnoresNestedGuids(t *testing.T) {
	t.Parallel()
	previous := model.New(map[string]any{
		"StartNode": map[string]any{"BHoM_Guid": "g-old", "X": 0},
		"Bars":      []any{map[string]any{"BHoM_Guid": "b-old", "L": 1}},
	})
	current := model.New(map[string]any{
		"StartNode": map[string]any{"BHoM_Guid": "g-new", "X": 0},
		"Bars":      []any{map[string]any{"BHoM_Guid": "b-new", "L": 1}},
	})

	got, err := DifferentProperties(previous, current, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	// A dotted entry names one path only.
	cfg := NewConfig(WithIgnore("StartNode.X"))
	got, err = DifferentProperties(previous, current, &cfg)
	require.NoError(t, err)
	assert.Equal(t, map[string]PropertyDelta{"StartNode": {
		Old: map[string]any{"BHoM_Guid": "g-old"},
		New: map[string]any{"BHoM_Guid": "g-new"},
	}, "Bars": {
		Old: []any{map[string]any{"BHoM_Guid": "b-old", "L": 1.0}},
		New: []any{map[string]any{"BHoM_Guid": "b-new", "L": 1.0}},
	}}, got)
}
