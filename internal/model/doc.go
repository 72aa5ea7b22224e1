// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package model defines the domain objects that revdiff compares, their hash
// fragments, and the boundary classification of raw snapshot values into
// domain and opaque items.
package model
