// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/revdiff/internal/differ"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/meta"
	"github.com/tfctl/revdiff/internal/output"
	"github.com/tfctl/revdiff/internal/snapshot"
)

// vennCommandAction partitions two snapshots by content hash, regardless of
// identity or hash chain.
func vennCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	format, opts, err := outputSettings(cmd)
	if err != nil {
		return err
	}

	a, b, err := loadPair(ctx, cmd)
	if err != nil {
		return err
	}
	warnOpaque(cmd.Args().Get(0), a)
	warnOpaque(cmd.Args().Get(1), b)

	cfg := differ.NewConfig(differ.WithIgnore(ignoreList(cmd)...))
	v, err := differ.HashComparing(snapshot.Objects(a), snapshot.Objects(b), &cfg)
	if err != nil {
		return err
	}
	return output.RenderVenn(writer(cmd), v, format, opts)
}

// vennCommandBuilder constructs the "venn" subcommand.
func vennCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile := meta.Config.Source
	b := CommandBuilder{
		Name:      "venn",
		Usage:     "partition two snapshots into only-A, only-B and both by content",
		UsageText: "revdiff venn [options] A B",
		Args:      2,
		Flags:     append([]cli.Flag{NewIgnoreFlag()}, NewSourceFlags("venn", cfgFile)...),
		Action:    vennCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
