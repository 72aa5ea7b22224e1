// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/model"
)

// identityFunc extracts the identity of the i-th object of a side, or
// reports it missing.
type identityFunc func(i int, o *model.Object) (string, bool)

// identityIndex maps identity to the position of the object holding it.
// Duplicate identities resolve last-write-wins: the later position
// survives. This is the single place that policy lives.
type identityIndex struct {
	side string
	pos  map[string]int
}

// buildIndex indexes objs by identity. A missing identity is a
// MissingIdentityError naming field. A duplicate is an AmbiguousMatchError,
// returned when strict and otherwise recorded in warnings.
func buildIndex(side, field string, objs []*model.Object, id identityFunc, strict bool) (*identityIndex, []error, error) {
	idx := &identityIndex{side: side, pos: make(map[string]int, len(objs))}
	var warnings []error
	for i, o := range objs {
		key, ok := id(i, o)
		if !ok {
			return nil, nil, &MissingIdentityError{Side: side, Index: i, Field: field}
		}
		if prev, dup := idx.pos[key]; dup {
			amb := &AmbiguousMatchError{Side: side, Identity: key, First: prev, Second: i}
			if strict {
				return nil, nil, amb
			}
			log.Warnf("last-write-wins: %v", amb)
			warnings = append(warnings, amb)
		}
		idx.pos[key] = i
	}
	return idx, warnings, nil
}

// lookup returns the surviving position for key.
func (x *identityIndex) lookup(key string) (int, bool) {
	i, ok := x.pos[key]
	return i, ok
}

// survivor reports whether position i is the one kept for key.
func (x *identityIndex) survivor(key string, i int) bool {
	return x.pos[key] == i
}

func hashIdentity(_ int, o *model.Object) (string, bool) {
	hf, ok := o.HashFragment()
	if !ok || hf.Hash == "" {
		return "", false
	}
	return hf.Hash, true
}

func customIdentity(field string) identityFunc {
	return func(_ int, o *model.Object) (string, bool) {
		if o == nil {
			return "", false
		}
		return o.CustomValue(field)
	}
}
