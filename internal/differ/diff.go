// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"sort"

	"github.com/tfctl/revdiff/internal/model"
)

// PropertyDelta is the old and new value of one differing property. A side
// where the property is absent holds nil.
type PropertyDelta struct {
	Old any `json:"old" yaml:"old"`
	New any `json:"new" yaml:"new"`
}

// Diff is the classification of two snapshots. Sequences keep the order of
// the input they came from.
type Diff struct {
	Added     []*model.Object
	Removed   []*model.Object
	Modified  []*model.Object
	Unchanged []*model.Object

	// ModifiedPairs is aligned with Modified. A is the resolved previous state
	// (nil when it could not be found), B the current object.
	ModifiedPairs []Pair[*model.Object]

	// ModifiedProperties maps a modified object's key (its Hash, or its
	// external id on the id-matching path) to the properties that differ. It
	// is nil when no entry was recorded.
	ModifiedProperties map[string]map[string]PropertyDelta

	// Config is the resolved copy the diff ran with.
	Config Config

	// IDField is the external id field objects were matched on, or "" for
	// the hash-chain path.
	IDField string

	// Warnings holds non-fatal conditions: *AmbiguousMatchError under
	// last-write-wins and *InconsistentHashStateError.
	Warnings []error
}

// HasChanges reports whether anything was added, removed or modified.
func (d *Diff) HasChanges() bool {
	return len(d.Added)+len(d.Removed)+len(d.Modified) > 0
}

// ChangedProperties returns the sorted property names recorded for key.
func (d *Diff) ChangedProperties(key string) []string {
	props := d.ModifiedProperties[key]
	names := make([]string, 0, len(props))
	for k := range props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Key returns the key o is recorded under in ModifiedProperties: its
// external id on the id-matching path, else its label.
func (d *Diff) Key(o *model.Object) string {
	if d.IDField != "" {
		if id, ok := o.CustomValue(d.IDField); ok {
			return id
		}
	}
	return o.Label()
}

// Counts summarizes the classification.
type Counts struct {
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
	Modified  int `json:"modified" yaml:"modified"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

// Counts returns the size of each classification.
func (d *Diff) Counts() Counts {
	return Counts{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Modified:  len(d.Modified),
		Unchanged: len(d.Unchanged),
	}
}
