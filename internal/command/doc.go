// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the revdiff CLI. It wires flags, config file
// value sources, validators, actions, and shell completion for the
// sub-commands.
package command
