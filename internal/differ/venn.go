// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/tfctl/revdiff/internal/hasher"
	"github.com/tfctl/revdiff/internal/model"
)

// Pair is one matched element from each side.
type Pair[T any] struct {
	A T `json:"a" yaml:"a"`
	B T `json:"b" yaml:"b"`
}

// VennDiagram partitions two sets into elements only in A, only in B, and
// matched pairs.
type VennDiagram[T any] struct {
	OnlyA []T       `json:"onlyA" yaml:"onlyA"`
	OnlyB []T       `json:"onlyB" yaml:"onlyB"`
	Both  []Pair[T] `json:"both" yaml:"both"`
}

// Reconcile splits a and b by the equivalence eq. Each element of a is paired
// with the first still-unmatched equivalent element of b, so duplicates pair
// one to one. OnlyA and Both follow the order of a; OnlyB the order of b.
//
// Reconcile does not normalize its inputs. Callers comparing domain objects
// pass them through hasher.Prepare first so eq never sees ignorable fields.
func Reconcile[T any](a, b []T, eq func(x, y T) bool) VennDiagram[T] {
	var v VennDiagram[T]
	matched := make([]bool, len(b))
	for _, x := range a {
		found := -1
		for j, y := range b {
			if !matched[j] && eq(x, y) {
				found = j
				break
			}
		}
		if found < 0 {
			v.OnlyA = append(v.OnlyA, x)
			continue
		}
		matched[found] = true
		v.Both = append(v.Both, Pair[T]{A: x, B: b[found]})
	}
	for j, y := range b {
		if !matched[j] {
			v.OnlyB = append(v.OnlyB, y)
		}
	}
	return v
}

// ReconcileByKey is Reconcile for equivalences expressible as equal keys. It
// produces the same partition in linear time.
func ReconcileByKey[T any, K comparable](a, b []T, key func(T) K) VennDiagram[T] {
	var v VennDiagram[T]
	pending := make(map[K][]int, len(b))
	for j, y := range b {
		k := key(y)
		pending[k] = append(pending[k], j)
	}
	matched := make([]bool, len(b))
	for _, x := range a {
		k := key(x)
		queue := pending[k]
		if len(queue) == 0 {
			v.OnlyA = append(v.OnlyA, x)
			continue
		}
		j := queue[0]
		pending[k] = queue[1:]
		matched[j] = true
		v.Both = append(v.Both, Pair[T]{A: x, B: b[j]})
	}
	for j, y := range b {
		if !matched[j] {
			v.OnlyB = append(v.OnlyB, y)
		}
	}
	return v
}

// HashComparing reconciles two object sets by content. See
// Engine.HashComparing.
func HashComparing(a, b []*model.Object, cfg *Config) (VennDiagram[*model.Object], error) {
	return defaultEngine.HashComparing(a, b, cfg)
}

// HashComparing prepares both sets for comparison (deep copy plus scrub of
// ignored properties) and reconciles the prepared copies by content hash.
// The diagram holds the prepared copies, not the inputs.
func (e *Engine) HashComparing(a, b []*model.Object, cfg *Config) (VennDiagram[*model.Object], error) {
	c := cfg.resolve()

	ha, err := e.prepareAndHash(a, c)
	if err != nil {
		return VennDiagram[*model.Object]{}, fmt.Errorf("set A: %w", err)
	}
	hb, err := e.prepareAndHash(b, c)
	if err != nil {
		return VennDiagram[*model.Object]{}, fmt.Errorf("set B: %w", err)
	}

	hv := ReconcileByKey(ha, hb, func(h hashed[*model.Object]) string { return h.hash })
	return unwrapVenn(hv), nil
}

// hashed pairs a value with its content hash.
type hashed[T any] struct {
	value T
	hash  string
}

func (e *Engine) prepareAndHash(objs []*model.Object, c Config) ([]hashed[*model.Object], error) {
	prepared, err := hasher.Prepare(objs, c.PropertiesToIgnore)
	if err != nil {
		return nil, err
	}
	out := make([]hashed[*model.Object], len(prepared))
	err = forEach(len(prepared), c.Workers, func(i int) error {
		h, err := e.hasher.Hash(prepared[i], nil)
		if err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		out[i] = hashed[*model.Object]{value: prepared[i], hash: h}
		return nil
	})
	return out, err
}

func (e *Engine) hashValues(values []any, c Config) ([]hashed[any], error) {
	out := make([]hashed[any], len(values))
	err := forEach(len(values), c.Workers, func(i int) error {
		h, err := e.hasher.Hash(values[i], c.PropertiesToIgnore)
		if err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = hashed[any]{value: values[i], hash: h}
		return nil
	})
	return out, err
}

func unwrapVenn[T any](hv VennDiagram[hashed[T]]) VennDiagram[T] {
	var v VennDiagram[T]
	for _, x := range hv.OnlyA {
		v.OnlyA = append(v.OnlyA, x.value)
	}
	for _, y := range hv.OnlyB {
		v.OnlyB = append(v.OnlyB, y.value)
	}
	for _, p := range hv.Both {
		v.Both = append(v.Both, Pair[T]{A: p.A.value, B: p.B.value})
	}
	return v
}
