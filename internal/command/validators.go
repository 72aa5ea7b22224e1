// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/revdiff/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// ArgsValidator returns a Before hook requiring exactly n positional args.
func ArgsValidator(n int, usage string) cli.BeforeFunc {
	return func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if c.Args().Len() != n {
			return ctx, fmt.Errorf("expected %d argument(s): %s", n, usage)
		}
		return ctx, nil
	}
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if _, err := output.ParseFormat(s); err != nil {
		return fmt.Errorf("must be one of [text json yaml]")
	}
	return nil
}

func NonNegativeValidator(value any) error {
	n, ok := value.(int)
	if !ok {
		return fmt.Errorf("must be an integer")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
