// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/model"
)

// ItemsDiff is the result of diffing snapshots that mix domain objects with
// opaque values. Opaque values have no identity beyond their content, so
// they are only ever added, removed or unchanged.
type ItemsDiff struct {
	Objects *Diff

	OpaqueAdded     []any
	OpaqueRemoved   []any
	OpaqueUnchanged []any
}

// HasChanges reports whether either part changed.
func (d *ItemsDiff) HasChanges() bool {
	return d.Objects.HasChanges() || len(d.OpaqueAdded)+len(d.OpaqueRemoved) > 0
}

// DiffItems diffs classified snapshots. See Engine.DiffItems.
func DiffItems(previous, current []model.Item, idField string, cfg *Config) (*ItemsDiff, error) {
	return defaultEngine.DiffItems(previous, current, idField, cfg)
}

// DiffItems diffs the domain objects of both snapshots by hash chain, or by
// external id when idField is set, and reconciles the opaque values by
// content hash: present only before is removed, only after is added, both is
// unchanged.
func (e *Engine) DiffItems(previous, current []model.Item, idField string, cfg *Config) (*ItemsDiff, error) {
	c := cfg.resolve()

	prevObjs, prevOpaque := model.Split(previous)
	curObjs, curOpaque := model.Split(current)
	log.Debugf("items: domain=%d/%d opaque=%d/%d", len(prevObjs), len(curObjs), len(prevOpaque), len(curOpaque))

	var (
		objs *Diff
		err  error
	)
	if idField != "" {
		objs, err = e.DiffByExternalID(prevObjs, curObjs, idField, &c)
	} else {
		objs, err = e.Diffing(prevObjs, curObjs, &c)
	}
	if err != nil {
		return nil, err
	}

	out := &ItemsDiff{Objects: objs}
	if len(prevOpaque)+len(curOpaque) == 0 {
		return out, nil
	}

	hp, err := e.hashValues(prevOpaque, c)
	if err != nil {
		return nil, err
	}
	hc, err := e.hashValues(curOpaque, c)
	if err != nil {
		return nil, err
	}

	v := unwrapVenn(ReconcileByKey(hp, hc, func(h hashed[any]) string { return h.hash }))
	out.OpaqueRemoved = v.OnlyA
	out.OpaqueAdded = v.OnlyB
	if c.StoreUnchangedObjects {
		for _, p := range v.Both {
			out.OpaqueUnchanged = append(out.OpaqueUnchanged, p.B)
		}
	}
	return out, nil
}
