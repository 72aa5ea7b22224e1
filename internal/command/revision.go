// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/revdiff/internal/differ"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/meta"
	"github.com/tfctl/revdiff/internal/output"
	"github.com/tfctl/revdiff/internal/revstore"
	"github.com/tfctl/revdiff/internal/snapshot"
)

// commitCommandAction stamps a snapshot and stores it as the next revision.
func commitCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	format, opts, err := outputSettings(cmd)
	if err != nil {
		return err
	}

	src := cmd.Args().Get(0)
	items, err := snapshot.Load(ctx, src, loadOptions(cmd))
	if err != nil {
		return err
	}
	warnOpaque(src, items)

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	label := cmd.String("label")
	if label == "" {
		label = src
	}
	rev, _, err := store.Commit(ctx, label, snapshot.Objects(items))
	if err != nil {
		return err
	}
	return output.RenderRevisions(writer(cmd), []revstore.Revision{rev}, format, opts)
}

// logCommandAction lists stored revisions.
func logCommandAction(ctx context.Context, cmd *cli.Command) error {
	format, opts, err := outputSettings(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	revs, err := store.Revisions(ctx)
	if err != nil {
		return err
	}
	return output.RenderRevisions(writer(cmd), revs, format, opts)
}

// pickCommandAction lets the user choose two stored revisions and diffs
// them, older first.
func pickCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	format, opts, err := outputSettings(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	revs, err := store.Revisions(ctx)
	if err != nil {
		return err
	}
	if len(revs) < 2 {
		log.Infof("pick needs two revisions, store has %d", len(revs))
		return nil
	}

	choices := make([]differ.Choice, len(revs))
	for i, r := range revs {
		choices[i] = differ.Choice{
			ID:      strconv.FormatInt(r.ID, 10),
			Label:   r.Label,
			Objects: r.Objects,
			Created: r.Created,
		}
	}
	picked, err := differ.SelectRevisions(choices)
	if err != nil {
		return err
	}
	if len(picked) != 2 {
		return nil
	}

	ids := make([]int64, 2)
	for i, c := range picked {
		if ids[i], err = strconv.ParseInt(c.ID, 10, 64); err != nil {
			return err
		}
	}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}

	previous, err := store.Load(ctx, ids[0])
	if err != nil {
		return err
	}
	current, err := store.Load(ctx, ids[1])
	if err != nil {
		return err
	}
	log.Debugf("pick: diffing revision %d against %d", ids[0], ids[1])
	return runDiff(cmd, m, domainItems(previous), domainItems(current), format, opts)
}

// showCommandAction prints the stored object with the given hash. It is how
// a PreviousHash that leads outside the diffed snapshot is looked up.
func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	format, _, err := outputSettings(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	o, err := store.Ancestor(ctx, cmd.Args().Get(0))
	if err != nil {
		return err
	}
	return output.RenderObject(writer(cmd), o, format)
}

func commitCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile := meta.Config.Source
	b := CommandBuilder{
		Name:      "commit",
		Usage:     "stamp a snapshot and store it as a new revision",
		UsageText: "revdiff commit --db FILE [options] IN",
		Args:      1,
		Flags: append([]cli.Flag{
			NewDBFlag(true),
			NewIgnoreFlag(),
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "revision label, defaults to the source",
			},
		}, NewSourceFlags("commit", cfgFile)...),
		Action: commitCommandAction,
		Meta:   meta,
	}
	return b.Build()
}

func logCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "log",
		Usage:     "list stored revisions",
		UsageText: "revdiff log --db FILE [options]",
		Flags:     []cli.Flag{NewDBFlag(true)},
		Action:    logCommandAction,
		Meta:      meta,
	}
	return b.Build()
}

func pickCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "pick",
		Usage:     "choose two stored revisions interactively and diff them",
		UsageText: "revdiff pick --db FILE [options]",
		Flags:     append([]cli.Flag{NewDBFlag(true)}, NewDiffFlags("pick", meta.Config.Source)...),
		Action:    pickCommandAction,
		Meta:      meta,
	}
	return b.Build()
}

func showCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "show",
		Usage:     "print the stored object with a hash",
		UsageText: "revdiff show --db FILE [options] HASH",
		Args:      1,
		Flags:     []cli.Flag{NewDBFlag(true)},
		Action:    showCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
