// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/revdiff/internal/config"
	"github.com/tfctl/revdiff/internal/meta"
)

// InitApp builds the revdiff command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	// The arg[1] immediately following the binary is the sub-command and also
	// the namespace key used when retrieving config values.
	m := meta.Meta{
		Args:        args,
		Env:         env,
		Context:     ctx,
		StartingDir: sd,
	}
	config.Config.Namespace = m.Namespace()

	// A missing default config file is fine; a broken or misnamed one is not.
	cfg, err := config.Load()
	if err != nil && (env.CfgFile != "" || config.File() != "") {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	m.Config = cfg

	app := &cli.Command{
		Name:  "revdiff",
		Usage: "BHoM object revision diff",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "revdiff version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		diffCommandBuilder(m),
		vennCommandBuilder(m),
		stampCommandBuilder(m),
		commitCommandBuilder(m),
		logCommandBuilder(m),
		pickCommandBuilder(m),
		showCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
