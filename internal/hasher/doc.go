// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package hasher computes content digests of domain objects and opaque values
// and prepares object sets for equivalence comparison.
package hasher
