// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package revspec resolves the PREV and CURR arguments of a diff against a
// revision store. Each argument names either a stored revision (relative to
// the newest, by id, or by label prefix) or a snapshot source.
package revspec
