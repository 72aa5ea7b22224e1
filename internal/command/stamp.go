// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/meta"
	"github.com/tfctl/revdiff/internal/snapshot"
)

// stampCommandAction advances the hash chain of a snapshot so it can be
// diffed against its successor.
func stampCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	src := cmd.Args().Get(0)
	opts := loadOptions(cmd)
	items, err := snapshot.Load(ctx, src, opts)
	if err != nil {
		return err
	}
	warnOpaque(src, items)

	stamped, err := snapshot.Stamp(snapshot.Objects(items), nil, ignoreList(cmd))
	if err != nil {
		return err
	}

	var passphrase string
	if cmd.Bool("encrypt") {
		if passphrase, err = opts.Passphrase(); err != nil {
			return err
		}
	}

	var w io.Writer = writer(cmd)
	if out := cmd.String("out"); out != "" && out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	log.Debugf("stamped %d object(s)", len(stamped))
	return snapshot.Write(w, stamped, passphrase)
}

// stampCommandBuilder constructs the "stamp" subcommand.
func stampCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile := meta.Config.Source
	b := CommandBuilder{
		Name:      "stamp",
		Usage:     "advance the hash chain of a snapshot",
		UsageText: "revdiff stamp [options] IN",
		Args:      1,
		Flags: append([]cli.Flag{
			NewIgnoreFlag(),
			&cli.StringFlag{
				Name:  "out",
				Usage: "write the stamped snapshot here instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "encrypt",
				Usage: "seal the stamped snapshot with the passphrase",
			},
		}, NewSourceFlags("stamp", cfgFile)...),
		Action: stampCommandAction,
		Meta:   meta,
	}
	return b.Build()
}
