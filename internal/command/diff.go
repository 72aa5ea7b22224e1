// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/revdiff/internal/differ"
	"github.com/tfctl/revdiff/internal/filters"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/meta"
	"github.com/tfctl/revdiff/internal/model"
	"github.com/tfctl/revdiff/internal/output"
	"github.com/tfctl/revdiff/internal/revspec"
	"github.com/tfctl/revdiff/internal/snapshot"
)

const diffUsage = "revdiff diff [options] PREV CURR | revdiff diff --db FILE [options] [PREV [CURR]]"

// diffCommandAction diffs PREV against CURR. With --db either side may name
// a stored revision.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	format, opts, err := outputSettings(cmd)
	if err != nil {
		return err
	}

	var previous, current []model.Item
	if cmd.String("db") == "" {
		if cmd.Args().Len() != 2 {
			return fmt.Errorf("expected 2 argument(s): %s", diffUsage)
		}
		if previous, current, err = loadPair(ctx, cmd); err != nil {
			return err
		}
	} else {
		if previous, current, err = loadResolved(ctx, cmd); err != nil {
			return err
		}
	}

	return runDiff(cmd, m, previous, current, format, opts)
}

// loadResolved loads PREV and CURR through the revision store. Missing
// arguments default to the two newest revisions.
func loadResolved(ctx context.Context, cmd *cli.Command) (previous, current []model.Item, err error) {
	args := cmd.Args().Slice()
	if len(args) > 2 {
		return nil, nil, fmt.Errorf("expected at most 2 argument(s): %s", diffUsage)
	}

	store, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	revs, err := store.Revisions(ctx)
	if err != nil {
		return nil, nil, err
	}

	specs := args
	if len(args) == 1 {
		// A lone argument is compared with the newest revision.
		specs = []string{args[0], "HEAD"}
	}
	sources, err := revspec.Resolve(revs, specs...)
	if err != nil {
		return nil, nil, err
	}

	opts := loadOptions(cmd)
	sides := make([][]model.Item, 2)
	for i, src := range sources {
		log.Debugf("diff side %d: %s", i, src)
		if src.Revision == nil {
			if sides[i], err = snapshot.Load(ctx, src.Path, opts); err != nil {
				return nil, nil, err
			}
			continue
		}
		objs, err := store.Load(ctx, src.Revision.ID)
		if err != nil {
			return nil, nil, err
		}
		sides[i] = domainItems(objs)
	}
	return sides[0], sides[1], nil
}

// runDiff diffs two loaded snapshots and renders the result.
func runDiff(cmd *cli.Command, m meta.Meta, previous, current []model.Item, format output.Format, opts output.Options) error {
	cfg := diffConfig(cmd, m)
	d, err := differ.DiffItems(previous, current, cmd.String("id-field"), &cfg)
	if err != nil {
		return err
	}

	if spec := cmd.String("filter"); spec != "" {
		d = filters.Diff(d, filters.BuildFilters(spec))
	}

	c := d.Objects.Counts()
	log.Debugf("diff: added=%d removed=%d modified=%d unchanged=%d", c.Added, c.Removed, c.Modified, c.Unchanged)
	return output.Render(writer(cmd), d, format, opts)
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile := meta.Config.Source
	flags := append(NewDiffFlags("diff", cfgFile), NewSourceFlags("diff", cfgFile)...)
	b := CommandBuilder{
		Name:      "diff",
		Usage:     "classify objects of two snapshot revisions",
		UsageText: diffUsage,
		Args:      -1,
		Flags:     append(flags, NewDBFlag(false)),
		Action:    diffCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
