// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/tfctl/revdiff/internal/model"
)

// ErrInvalid is returned for input that is not a JSON snapshot.
var ErrInvalid = errors.New("invalid snapshot")

// Parse reads a snapshot document. A snapshot is a JSON array whose elements
// are classified into domain objects and opaque values. A single top-level
// object is a one-element snapshot. When path is set it is a gjson query
// selecting the array inside a larger document, e.g. "model.elements" or
// "revisions.#(label==\"v2\").objects".
func Parse(data []byte, path string) ([]model.Item, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalid)
	}

	root := gjson.ParseBytes(data)
	if path != "" {
		root = root.Get(path)
		if !root.Exists() {
			return nil, fmt.Errorf("%w: path %q matched nothing", ErrInvalid, path)
		}
	}

	var values []any
	switch {
	case root.IsArray():
		for _, r := range root.Array() {
			v, err := decode(r)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	case root.IsObject():
		v, err := decode(root)
		if err != nil {
			return nil, err
		}
		values = []any{v}
	default:
		return nil, fmt.Errorf("%w: want an array of objects, got %s", ErrInvalid, root.Type)
	}

	items, err := model.ClassifyAll(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return items, nil
}

// decode converts a gjson result into the JSON data model. Raw text is
// decoded rather than taking Value(), which would round every number through
// float64.
func decode(r gjson.Result) (any, error) {
	v, err := model.DecodeJSON([]byte(r.Raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return v, nil
}

// Objects returns the domain objects of items in order, dropping opaque
// values.
func Objects(items []model.Item) []*model.Object {
	objs, _ := model.Split(items)
	return objs
}
