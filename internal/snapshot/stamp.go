// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tfctl/revdiff/internal/hasher"
	"github.com/tfctl/revdiff/internal/model"
)

// Stamp advances the hash chain of a snapshot for its next revision. Each
// object is cloned; its old Hash becomes PreviousHash and Hash becomes the
// fresh content hash under ignore. Objects that were never stamped get only
// a Hash. Objects without a guid get a UUIDv7. The inputs are not modified.
//
// An object whose content did not change since its last stamp ends up with
// Hash == PreviousHash, which the diff reports as unchanged.
func Stamp(objs []*model.Object, h hasher.ContentHasher, ignore []string) ([]*model.Object, error) {
	if h == nil {
		h = hasher.SHA256{}
	}

	out := make([]*model.Object, len(objs))
	for i, o := range objs {
		if o == nil {
			return nil, fmt.Errorf("object %d is nil", i)
		}
		c := o.Clone()
		if c.Guid == "" {
			c.Guid = uuid.Must(uuid.NewV7()).String()
		}

		// The content hash never covers the chain itself.
		frag, stamped := c.HashFragment()
		c.Hash = nil
		sum, err := h.Hash(c, ignore)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		var previous string
		if stamped {
			previous = frag.Hash
		}
		c.WithHash(sum, previous)
		out[i] = c
	}
	return out, nil
}
