// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import "fmt"

// Kind tags an Item.
type Kind int

const (
	// KindDomain items carry an *Object.
	KindDomain Kind = iota
	// KindOpaque items carry any other value, compared by content only.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Item is one element of a snapshot after boundary classification. Exactly
// one of Object or Opaque is meaningful, as indicated by Kind.
type Item struct {
	Kind   Kind
	Object *Object
	Opaque any
}

// Classify splits a raw value into a domain or opaque item. JSON objects and
// Object values are domain objects; everything else is opaque. A JSON object
// with malformed reserved keys is an error.
func Classify(v any) (Item, error) {
	switch v := v.(type) {
	case *Object:
		if v == nil {
			return Item{Kind: KindOpaque}, nil
		}
		return Item{Kind: KindDomain, Object: v}, nil
	case Object:
		return Item{Kind: KindDomain, Object: &v}, nil
	case map[string]any:
		obj, err := FromMap(v)
		if err != nil {
			return Item{}, err
		}
		return Item{Kind: KindDomain, Object: obj}, nil
	default:
		return Item{Kind: KindOpaque, Opaque: v}, nil
	}
}

// ClassifyAll classifies every value, stopping at the first error.
func ClassifyAll(values []any) ([]Item, error) {
	items := make([]Item, 0, len(values))
	for i, v := range values {
		item, err := Classify(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Split separates items into domain objects and opaque values, each in input
// order.
func Split(items []Item) (objects []*Object, opaque []any) {
	for _, it := range items {
		if it.Kind == KindDomain {
			objects = append(objects, it.Object)
		} else {
			opaque = append(opaque, it.Opaque)
		}
	}
	return
}
