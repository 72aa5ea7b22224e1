// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot reads and writes object snapshots.
//
// A snapshot is a JSON array of objects in flat form. Sources are local
// files, stdin, or S3 objects, the latter cached on disk by entity tag. A
// snapshot may be sealed in a passphrase envelope (PBKDF2-SHA512 key
// derivation, AES-256-GCM).
//
// Stamp advances the hash chain so the next diff can classify objects by
// hash alone.
package snapshot
