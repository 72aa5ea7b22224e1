// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/tfctl/revdiff/internal/model"
)

// Encode renders objects as an indented snapshot array.
func Encode(objs []*model.Object) ([]byte, error) {
	if objs == nil {
		objs = []*model.Object{}
	}
	data, err := json.MarshalIndent(objs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}
