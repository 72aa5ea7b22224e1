// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"golang.org/x/sync/errgroup"
)

// forEach runs fn for 0..n-1, in parallel when workers > 1. fn must only
// write to its own slot of any shared slice. The returned error is the one
// with the lowest index, so failures are reported the same way regardless of
// scheduling.
func forEach(n, workers int, fn func(i int) error) error {
	if workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, n)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			errs[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
