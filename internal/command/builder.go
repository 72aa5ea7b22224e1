// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/revdiff/internal/config"
	"github.com/tfctl/revdiff/internal/meta"
)

// CommandBuilder constructs a cli.Command using a consistent pattern. It
// wires metadata, appends the global output flags, checks the positional
// argument count and points config lookups at the command's namespace.
// A negative Args leaves argument checking to the action.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Args      int
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CommandBuilder) Build() *cli.Command {
	validate := ArgsValidator(b.Args, b.UsageText)
	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: append(b.Flags, NewGlobalFlags(b.Name, b.Meta.Config.Source)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			config.Config.Namespace = b.Name
			if b.Args < 0 {
				return ctx, nil
			}
			return validate(ctx, c)
		},
		Action: b.Action,
	}
}
