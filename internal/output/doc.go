// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders diffs, venn reconciliations and revision listings
// as text tables, JSON or YAML.
package output
