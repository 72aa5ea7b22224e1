// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package revstore persists stamped snapshot revisions in SQLite. Every
// commit advances the hash chain, so any two stored revisions can be diffed
// by hash alone.
package revstore
