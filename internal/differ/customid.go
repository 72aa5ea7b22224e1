// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/model"
)

// DiffByExternalID classifies by an application-level identifier. See
// Engine.DiffByExternalID.
func DiffByExternalID(previous, current []*model.Object, idField string, cfg *Config) (*Diff, error) {
	return defaultEngine.DiffByExternalID(previous, current, idField, cfg)
}

// DiffByExternalID matches objects across snapshots by the custom-data value
// at idField instead of a hash chain. Matched pairs are compared by content
// hash, computed without ignored properties and without the id itself: equal
// hashes are Unchanged, different ones Modified. Unmatched current objects
// are Added, unmatched previous ones Removed.
//
// ModifiedProperties is keyed by the external id. Every object on both sides
// must carry the id; duplicates follow the last-write-wins policy unless the
// config is strict.
func (e *Engine) DiffByExternalID(previous, current []*model.Object, idField string, cfg *Config) (*Diff, error) {
	if idField == "" {
		return nil, fmt.Errorf("external id field must be named: %w", ErrUnsupported)
	}

	c := cfg.resolve()
	idPath := model.CustomDataField + "." + idField
	if !c.Ignores(idPath) && !c.Ignores(model.CustomDataField) {
		c.PropertiesToIgnore = append(c.PropertiesToIgnore, idPath)
	}
	log.Debugf("diffing by id %q: previous=%d current=%d", idField, len(previous), len(current))

	field := idPath
	id := customIdentity(idField)

	curIdx, warnings, err := buildIndex(SideCurrent, field, current, id, c.Strict)
	if err != nil {
		return nil, err
	}
	prevIdx, prevWarnings, err := buildIndex(SidePrevious, field, previous, id, c.Strict)
	if err != nil {
		return nil, err
	}
	warnings = append(prevWarnings, warnings...)

	type outcome struct {
		skip bool
		key  string
		verdict
	}
	outcomes := make([]outcome, len(current))

	err = forEach(len(current), c.Workers, func(i int) error {
		o := current[i]
		key, _ := id(i, o)
		out := &outcomes[i]
		out.key = key

		if !curIdx.survivor(key, i) {
			out.skip = true
			return nil
		}

		pos, found := prevIdx.lookup(key)
		if !found {
			out.class = classAdded
			return nil
		}
		prior := previous[pos]

		curHash, err := e.hasher.Hash(o, c.PropertiesToIgnore)
		if err != nil {
			return fmt.Errorf("failed to hash current %q: %w", key, err)
		}
		prevHash, err := e.hasher.Hash(prior, c.PropertiesToIgnore)
		if err != nil {
			return fmt.Errorf("failed to hash previous %q: %w", key, err)
		}

		if curHash == prevHash {
			out.class = classUnchanged
			return nil
		}

		out.class = classModified
		out.prior = prior
		if c.EnablePropertyDiffing {
			props, err := differentProperties(prior, o, c)
			if err != nil {
				return err
			}
			out.props = props
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d := &Diff{Config: c, IDField: idField}
	modProps := map[string]map[string]PropertyDelta{}

	for i, out := range outcomes {
		if out.skip {
			continue
		}
		o := current[i]
		switch out.class {
		case classAdded:
			d.Added = append(d.Added, o)
		case classUnchanged:
			if c.StoreUnchangedObjects {
				d.Unchanged = append(d.Unchanged, o)
			}
		case classModified:
			d.Modified = append(d.Modified, o)
			d.ModifiedPairs = append(d.ModifiedPairs, Pair[*model.Object]{A: out.prior, B: o})
			if len(out.props) > 0 {
				modProps[out.key] = out.props
			}
		}
	}

	for i, o := range previous {
		key, _ := id(i, o)
		if !prevIdx.survivor(key, i) {
			continue
		}
		if _, ok := curIdx.lookup(key); !ok {
			d.Removed = append(d.Removed, o)
		}
	}

	if len(modProps) > 0 {
		d.ModifiedProperties = modProps
	}
	d.Warnings = warnings
	return d, nil
}
