// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespace(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"command", []string{"revdiff", "diff", "a", "b"}, "diff"},
		{"flag first", []string{"revdiff", "--version"}, ""},
		{"bare binary", []string{"revdiff"}, ""},
		{"empty arg", []string{"revdiff", ""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Meta{Args: tt.args}.Namespace())
		})
	}
}
