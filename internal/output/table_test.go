// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterfaceToString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{"nil", nil, nil, ""},
		{"nil with empty value", nil, []string{"-"}, "-"},
		{"zero string", "", []string{"-"}, "-"},
		{"string", "wall", nil, "wall"},
		{"int", 42, nil, "42"},
		{"integral float", 3.0, nil, "3"},
		{"fractional float", 3.25, nil, "3.25"},
		{"bool", true, nil, "true"},
		{"map", map[string]interface{}{"a": 1}, nil, `{"a":1}`},
		{"slice", []interface{}{"x", 2}, nil, `["x",2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestSortDataset(t *testing.T) {
	t.Parallel()
	rows := func() []map[string]interface{} {
		return []map[string]interface{}{
			{"status": "~", "key": "b", "n": 2.0},
			{"status": "+", "key": "B", "n": 10.0},
			{"status": "+", "key": "a", "n": 1.0},
		}
	}
	keys := func(rs []map[string]interface{}) string {
		var out []string
		for _, r := range rs {
			out = append(out, r["key"].(string))
		}
		return strings.Join(out, "")
	}

	tests := []struct {
		spec string
		want string
	}{
		{"", "bBa"},
		{"key", "abB"},
		{"!key", "Bab"},
		{"-n", "Bba"},
		{"status,-key", "Bab"},
	}

	for _, tt := range tests {
		t.Run("spec="+tt.spec, func(t *testing.T) {
			rs := rows()
			SortDataset(rs, tt.spec)
			assert.Equal(t, tt.want, keys(rs))
		})
	}
}

func TestTableWriter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	TableWriter(nil, []string{"a"}, Options{}, &buf)
	assert.Empty(t, buf.String())

	rows := []map[string]interface{}{
		{"status": "+", "key": "h1"},
		{"status": "-", "key": nil},
	}
	TableWriter(rows, []string{"status", "key"}, Options{Titles: true, Padding: 3}, &buf)
	out := buf.String()
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "h1")
	assert.Contains(t, out, "-", "missing cells render as a dash")
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}
