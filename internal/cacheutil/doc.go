// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cacheutil stores downloaded snapshot bodies on local disk, keyed
// by the sha256 of a clear-text key. REVDIFF_CACHE_DIR moves the cache and
// REVDIFF_CACHE=0 disables it.
package cacheutil
