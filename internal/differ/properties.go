// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/yudai/gojsondiff"

	"github.com/tfctl/revdiff/internal/hasher"
	"github.com/tfctl/revdiff/internal/model"
)

// DifferentProperties returns every comparable property whose value differs
// between previous and current under structural equality, with the previous
// value as Old and the current value as New. Names on the config's ignore list
// are excluded. The result is empty, never nil, when nothing differs.
func DifferentProperties(previous, current *model.Object, cfg *Config) (map[string]PropertyDelta, error) {
	if previous == nil || current == nil {
		return nil, fmt.Errorf("property diff needs two objects: %w", ErrUnsupported)
	}
	return differentProperties(previous, current, cfg.resolve())
}

func differentProperties(previous, current *model.Object, c Config) (map[string]PropertyDelta, error) {
	left, right, err := comparablePair(previous, current, c)
	if err != nil {
		return nil, err
	}

	out := map[string]PropertyDelta{}
	delta := gojsondiff.New().CompareObjects(left, right)
	if !delta.Modified() {
		return out, nil
	}

	for _, d := range delta.Deltas() {
		name, ok := deltaName(d)
		if !ok {
			continue
		}
		out[name] = PropertyDelta{Old: left[name], New: right[name]}
	}
	return out, nil
}

// comparablePair returns the normalized comparable state of both objects.
func comparablePair(previous, current *model.Object, c Config) (left, right map[string]any, err error) {
	left, err = hasher.Comparable(previous, c.PropertiesToIgnore)
	if err != nil {
		return nil, nil, err
	}
	right, err = hasher.Comparable(current, c.PropertiesToIgnore)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// deltaName returns the top-level property a delta applies to. Deleted
// properties only carry a pre-position; everything else a post-position.
func deltaName(d gojsondiff.Delta) (string, bool) {
	switch d := d.(type) {
	case gojsondiff.PostDelta:
		return d.PostPosition().String(), true
	case gojsondiff.PreDelta:
		return d.PrePosition().String(), true
	default:
		return "", false
	}
}
