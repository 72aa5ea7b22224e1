// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/model"
)

// RenderChange renders the comparable state of a modified pair as an ascii
// delta, previous on the left. It returns "" when the two states are equal
// under cfg.
func RenderChange(previous, current *model.Object, cfg *Config, coloring bool) (string, error) {
	if previous == nil || current == nil {
		return "", fmt.Errorf("render needs two objects: %w", ErrUnsupported)
	}
	c := cfg.resolve()

	left, right, err := comparablePair(previous, current, c)
	if err != nil {
		return "", err
	}

	delta := gojsondiff.New().CompareObjects(left, right)
	if !delta.Modified() {
		log.Tracef("render: %s unchanged under config", current.Label())
		return "", nil
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	})
	out, err := f.Format(delta)
	if err != nil {
		return "", fmt.Errorf("failed to format delta: %w", err)
	}
	return out, nil
}
