// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PassphraseEnv names the environment variable consulted before prompting.
const PassphraseEnv = "REVDIFF_PASSPHRASE"

// ErrNoTerminal is returned when a passphrase is needed but stdin is not a
// terminal.
var ErrNoTerminal = errors.New("passphrase required but stdin is not a terminal")

// PassphraseSource resolves the passphrase for encrypted snapshots: the
// explicit value first, then REVDIFF_PASSPHRASE, then an interactive prompt
// on prompt. The result is remembered so one run prompts at most once.
func PassphraseSource(explicit string, prompt io.Writer) func() (string, error) {
	var cached string
	return func() (string, error) {
		if cached != "" {
			return cached, nil
		}
		switch {
		case explicit != "":
			cached = explicit
		case os.Getenv(PassphraseEnv) != "":
			cached = os.Getenv(PassphraseEnv)
		default:
			p, err := ReadPassphrase(prompt)
			if err != nil {
				return "", err
			}
			cached = p
		}
		return cached, nil
	}
}

// ReadPassphrase prompts on w and reads a passphrase from the terminal
// without echoing it.
func ReadPassphrase(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}

	fmt.Fprint(w, "Enter passphrase: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(b), nil
}
