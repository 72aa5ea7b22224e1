// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/revdiff/internal/cacheutil"
	"github.com/tfctl/revdiff/internal/command"
	"github.com/tfctl/revdiff/internal/config"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/version"
)

var ctx = context.Background()

// boolFlags lists the flags that never take a value. Every other flag
// consumes the following argument unless it uses the --name=value form.
var boolFlags = map[string]bool{
	"--color": true, "-c": true,
	"--titles": true, "-t": true,
	"--show-changes": true, "-d": true,
	"--no-property-diff": true,
	"--no-unchanged":     true,
	"--strict":           true,
	"--encrypt":          true,
	"--help":             true, "-h": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)
	return deduplicateFlags(args)
}

// processSetOnly expands an @set argument into the flags listed under
// <command>.<set> in the config file. Without an explicit @set the
// "defaults" set is injected, when one is configured.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	set := "defaults"
	insertIdx := 2
	for i, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			insertIdx = 2 + i
			args = append(args[:insertIdx:insertIdx], args[insertIdx+1:]...)
			break
		}
	}

	entries, _ := config.GetStringSlice(args[1] + "." + set)
	return injectConfigSet(args, entries, insertIdx)
}

// injectConfigSet splits each entry on whitespace and inserts the fields at
// insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags drops every occurrence of a repeated flag except the
// last, so explicit flags win over injected config sets. Positional
// arguments and everything after "--" are kept as is.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		key    string
		tokens []string
	}

	var groups []group
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		switch {
		case a == "--":
			groups = append(groups, group{tokens: rest[i:]})
			i = len(rest)
		case !strings.HasPrefix(a, "-") || a == "-":
			groups = append(groups, group{tokens: []string{a}})
		case strings.Contains(a, "="):
			groups = append(groups, group{key: a[:strings.Index(a, "=")], tokens: []string{a}})
		case !boolFlags[a] && i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-"):
			groups = append(groups, group{key: a, tokens: []string{a, rest[i+1]}})
			i++
		default:
			groups = append(groups, group{key: a, tokens: []string{a}})
		}
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.key != "" {
			last[g.key] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.key != "" && last[g.key] != i {
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	if cacheutil.Enabled() {
		hours, _ := config.GetInt("cache.purge", 0)
		if err := cacheutil.Purge(hours); err != nil {
			log.Debugf("cache purge err: err=%v", err)
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}
