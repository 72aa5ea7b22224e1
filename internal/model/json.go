// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"strings"
)

// maxExactInt is the largest magnitude float64 holds for every integer.
const maxExactInt = 1 << 53

// DecodeJSON decodes data into the JSON data model: map[string]any, []any,
// string, bool, nil and numbers. Integers beyond what float64 represents
// exactly stay json.Number in canonical form; every other number is float64.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}
	return Numbers(v), nil
}

// Numbers rewrites json.Number values in v the way DecodeJSON does. Maps and
// slices are updated in place.
func Numbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = Numbers(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = Numbers(e)
		}
		return v
	case json.Number:
		return number(v)
	default:
		return v
	}
}

func number(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, ok := new(big.Int).SetString(s, 10); ok {
			if i.IsInt64() && i.Int64() <= maxExactInt && i.Int64() >= -maxExactInt {
				return float64(i.Int64())
			}
			return json.Number(i.String())
		}
	}
	f, err := n.Float64()
	if err != nil {
		return n
	}
	return f
}
