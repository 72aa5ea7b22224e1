// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/revdiff/internal/hasher"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/model"
)

// Engine runs diffs with a given ContentHasher. The zero value is not usable;
// call New. An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	hasher hasher.ContentHasher
}

// New returns an Engine using h, or the SHA256 hasher when h is nil.
func New(h hasher.ContentHasher) *Engine {
	if h == nil {
		h = hasher.SHA256{}
	}
	return &Engine{hasher: h}
}

var defaultEngine = New(nil)

// Diffing classifies current against previous using the hash chain. See
// Engine.Diffing.
func Diffing(previous, current []*model.Object, cfg *Config) (*Diff, error) {
	return defaultEngine.Diffing(previous, current, cfg)
}

type class int

const (
	classAdded class = iota
	classModified
	classUnchanged
)

// verdict is the per-object outcome of the classification loop.
type verdict struct {
	class class
	prior *model.Object
	props map[string]PropertyDelta
	warn  error
}

// Diffing classifies every object of current as Added, Modified or Unchanged
// by its hash fragment, and lists as Removed every previous object whose Hash
// no current object claims as its PreviousHash.
//
// Every current object must carry a Hash; a missing one aborts the call with
// a *MissingIdentityError. A PreviousHash that resolves to no previous object
// still classifies Modified, without property deltas, and is recorded as an
// *InconsistentHashStateError warning.
func (e *Engine) Diffing(previous, current []*model.Object, cfg *Config) (*Diff, error) {
	c := cfg.resolve()
	log.Debugf("diffing: previous=%d current=%d workers=%d", len(previous), len(current), c.Workers)

	// Current hashes are indexed only to enforce presence and detect duplicates.
	_, warnings, err := buildIndex(SideCurrent, "Hash", current, hashIdentity, c.Strict)
	if err != nil {
		return nil, err
	}

	prevIdx, prevWarnings, err := buildIndex(SidePrevious, "Hash", previous, hashIdentity, c.Strict)
	if err != nil {
		return nil, err
	}
	warnings = append(prevWarnings, warnings...)

	verdicts := make([]verdict, len(current))
	err = forEach(len(current), c.Workers, func(i int) error {
		o := current[i]
		hf := *o.Hash
		v := &verdicts[i]

		switch {
		case !hf.HasPrevious():
			v.class = classAdded
		case hf.PreviousHash == hf.Hash:
			v.class = classUnchanged
		default:
			v.class = classModified
			pos, found := prevIdx.lookup(hf.PreviousHash)
			if !found {
				v.warn = &InconsistentHashStateError{Index: i, Hash: hf.Hash, PreviousHash: hf.PreviousHash}
				return nil
			}
			v.prior = previous[pos]
			if c.EnablePropertyDiffing {
				props, err := differentProperties(v.prior, o, c)
				if err != nil {
					return err
				}
				v.props = props
			}
		}
		log.Tracef("classified %s as %d", hf.Hash, v.class)
		return nil
	})
	if err != nil {
		return nil, err
	}

	d := &Diff{Config: c}
	modProps := map[string]map[string]PropertyDelta{}
	claimed := make(map[string]struct{}, len(current))

	for i, v := range verdicts {
		o := current[i]
		if o.Hash.HasPrevious() {
			claimed[o.Hash.PreviousHash] = struct{}{}
		}
		switch v.class {
		case classAdded:
			d.Added = append(d.Added, o)
		case classUnchanged:
			if c.StoreUnchangedObjects {
				d.Unchanged = append(d.Unchanged, o)
			}
		case classModified:
			d.Modified = append(d.Modified, o)
			d.ModifiedPairs = append(d.ModifiedPairs, Pair[*model.Object]{A: v.prior, B: o})
			if len(v.props) > 0 {
				modProps[o.Hash.Hash] = v.props
			}
		}
		if v.warn != nil {
			log.Warnf("%v", v.warn)
			warnings = append(warnings, v.warn)
		}
	}

	for i, o := range previous {
		h := o.Hash.Hash
		if !prevIdx.survivor(h, i) {
			continue
		}
		if _, ok := claimed[h]; !ok {
			d.Removed = append(d.Removed, o)
		}
	}

	if len(modProps) > 0 {
		d.ModifiedProperties = modProps
	}
	d.Warnings = warnings

	log.Debugf("diffing done: added=%d removed=%d modified=%d unchanged=%d warnings=%d",
		len(d.Added), len(d.Removed), len(d.Modified), len(d.Unchanged), len(d.Warnings))
	return d, nil
}
