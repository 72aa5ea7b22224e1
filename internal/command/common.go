// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/revdiff/internal/aws"
	"github.com/tfctl/revdiff/internal/config"
	"github.com/tfctl/revdiff/internal/differ"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/meta"
	"github.com/tfctl/revdiff/internal/model"
	"github.com/tfctl/revdiff/internal/output"
	"github.com/tfctl/revdiff/internal/revstore"
	"github.com/tfctl/revdiff/internal/snapshot"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer returns where command output goes.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// errWriter returns where warnings go.
func errWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}

// outputSettings reads the global output flags.
func outputSettings(cmd *cli.Command) (output.Format, output.Options, error) {
	format, err := output.ParseFormat(cmd.String("output"))
	if err != nil {
		return "", output.Options{}, err
	}
	padding, _ := config.GetInt("padding", 2)
	opts := output.Options{
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: padding,
		Sort:    cmd.String("sort"),

		ErrWriter: errWriter(cmd),
	}
	if cmd.Bool("show-changes") {
		opts.ShowChanges = true
	}
	return format, opts, nil
}

// ignoreList resolves the names excluded from comparison: --ignore, then
// the config file, then the diff defaults.
func ignoreList(cmd *cli.Command) []string {
	if cmd.IsSet("ignore") {
		return splitList(cmd.String("ignore"))
	}
	names, err := config.GetStringSlice("ignore")
	if err != nil {
		return append([]string(nil), differ.DefaultPropertiesToIgnore...)
	}
	return names
}

// diffConfig builds the differ configuration from the diff flags.
func diffConfig(cmd *cli.Command, m meta.Meta) differ.Config {
	workers := m.Env.Workers
	if cmd.IsSet("workers") {
		workers = int(cmd.Int("workers"))
	}
	return differ.NewConfig(
		differ.WithIgnore(ignoreList(cmd)...),
		differ.WithPropertyDiffing(!cmd.Bool("no-property-diff")),
		differ.WithStoreUnchanged(!cmd.Bool("no-unchanged")),
		differ.WithStrict(cmd.Bool("strict")),
		differ.WithWorkers(workers),
	)
}

// loadOptions builds the snapshot source options from the source flags.
func loadOptions(cmd *cli.Command) snapshot.Options {
	var awsOpts []aws.Option
	if p := cmd.String("profile"); p != "" {
		awsOpts = append(awsOpts, aws.WithProfile(p))
	}
	if r := cmd.String("region"); r != "" {
		awsOpts = append(awsOpts, aws.WithRegion(r))
	}
	if e := cmd.String("endpoint"); e != "" {
		awsOpts = append(awsOpts, aws.WithEndpoint(e), aws.WithPathStyle(true))
	}
	return snapshot.Options{
		Path:       cmd.String("path"),
		Passphrase: snapshot.PassphraseSource(cmd.String("passphrase"), os.Stderr),
		AWS:        awsOpts,
	}
}

// loadPair loads the two positional snapshots.
func loadPair(ctx context.Context, cmd *cli.Command) (a, b []model.Item, err error) {
	opts := loadOptions(cmd)
	if a, err = snapshot.Load(ctx, cmd.Args().Get(0), opts); err != nil {
		return nil, nil, err
	}
	if b, err = snapshot.Load(ctx, cmd.Args().Get(1), opts); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// openStore opens the --db revision store, excluding the ignore list from
// commit hashes.
func openStore(cmd *cli.Command) (*revstore.Store, error) {
	s, err := revstore.Open(cmd.String("db"), revstore.WithIgnore(ignoreList(cmd)...))
	if err != nil {
		return nil, fmt.Errorf("failed to open revision store: %w", err)
	}
	return s, nil
}

// domainItems wraps objects as domain items.
func domainItems(objs []*model.Object) []model.Item {
	items := make([]model.Item, len(objs))
	for i, o := range objs {
		items[i] = model.Item{Kind: model.KindDomain, Object: o}
	}
	return items
}

// warnOpaque logs values a command drops because they carry no identity.
func warnOpaque(src string, items []model.Item) {
	if n := len(items) - len(snapshot.Objects(items)); n > 0 {
		log.Warnf("%s: skipping %d non-object value(s)", src, n)
	}
}
