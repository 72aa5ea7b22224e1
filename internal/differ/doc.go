// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ classifies two revisions of a domain-object collection into
// added, removed, modified and unchanged objects, and computes per-property
// deltas for modified objects.
//
// The primary path follows the hash chain each object carries (Hash and
// PreviousHash). DiffByExternalID matches by an application-level id for data
// without a chain, HashComparing reconciles two sets by content alone, and
// DiffItems extends the hash-chain path to snapshots holding opaque values.
package differ
