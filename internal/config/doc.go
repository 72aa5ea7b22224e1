// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for revdiff's user
// configuration, plus the environment settings.
//
// The configuration is a YAML document named by REVDIFF_CFG_FILE or found
// as revdiff.yaml in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/revdiff.yaml or $HOME/.config/revdiff.yaml
//   - macOS: $HOME/Library/Application Support/revdiff.yaml
//   - Windows: %AppData%/revdiff.yaml
//
// Keys are dotted paths. Sub-commands set Namespace so that "diff.ignore"
// is preferred over a bare "ignore".
package config
