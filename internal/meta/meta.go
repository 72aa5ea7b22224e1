// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/revdiff/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, the environment settings, context, and the starting
// working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Env         config.Env
	Context     context.Context
	StartingDir string
}

// Namespace returns the sub-command name used as the config keyspace, or ""
// when the first argument is a flag.
func (m Meta) Namespace() string {
	if len(m.Args) > 1 && len(m.Args[1]) > 0 && m.Args[1][0] != '-' {
		return m.Args[1]
	}
	return ""
}
