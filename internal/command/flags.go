// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewDBFlag returns the --db flag naming the revision store.
func NewDBFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db",
		Usage:    "revision store file",
		Required: required,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("REVDIFF_DB"),
		),
	}
}

// NewGlobalFlags returns the output flags every command shares. Values may
// come from the config file, namespaced to ns first.
func NewGlobalFlags(ns string, cfgFile string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
			Sources: configSources(ns, "color", cfgFile),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Sources: configSources(ns, "output", cfgFile),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort text output by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
			Sources: configSources(ns, "titles", cfgFile),
		},
	}

	return
}

// NewSourceFlags returns the flags that control how snapshots are read.
func NewSourceFlags(ns string, cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "gjson query selecting the object array inside each document",
			Sources: configSources(ns, "path", cfgFile),
		},
		&cli.StringFlag{
			Name:  "passphrase",
			Usage: "passphrase for encrypted snapshots",
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS profile for s3:// sources",
			Sources: configSources(ns, "profile", cfgFile, "AWS_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for s3:// sources",
			Sources: configSources(ns, "region", cfgFile, "AWS_REGION"),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3 endpoint override for s3:// sources",
			Sources: configSources(ns, "endpoint", cfgFile, "REVDIFF_S3_ENDPOINT"),
		},
	}
}

// NewIgnoreFlag returns the --ignore flag. When it is not given the ignore
// list comes from the config file, then from the diff defaults.
func NewIgnoreFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "ignore",
		Aliases: []string{"i"},
		Usage:   "comma-separated property names or dotted paths to exclude from comparison",
	}
}

// NewDiffFlags returns the flags that shape a diff.
func NewDiffFlags(ns string, cfgFile string) []cli.Flag {
	return []cli.Flag{
		NewIgnoreFlag(),
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated filters selecting which objects to report",
		},
		&cli.StringFlag{
			Name:    "id-field",
			Usage:   "match objects on this CustomData key instead of the hash chain",
			Sources: configSources(ns, "idField", cfgFile),
		},
		&cli.BoolFlag{
			Name:  "no-property-diff",
			Usage: "skip per-property deltas for modified objects",
		},
		&cli.BoolFlag{
			Name:  "no-unchanged",
			Usage: "do not keep unchanged objects in the result",
		},
		&cli.BoolFlag{
			Name:    "show-changes",
			Aliases: []string{"d"},
			Usage:   "render a delta for each modified object",
		},
		&cli.BoolFlag{
			Name:    "strict",
			Usage:   "fail on duplicate identities instead of keeping the last",
			Sources: configSources(ns, "strict", cfgFile),
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "parallel classification workers",
			Sources: configSources(ns, "workers", cfgFile, "REVDIFF_WORKERS"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
	}
}

// configSources chains the given env vars with the namespaced and then the
// global key of the config file at path.
func configSources(ns string, key string, path string, envVars ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, e := range envVars {
		chain.Chain = append(chain.Chain, cli.EnvVar(e))
	}
	if path == "" {
		return chain
	}
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(path)))
	return chain
}

// splitList splits a comma separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
