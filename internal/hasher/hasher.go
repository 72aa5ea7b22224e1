// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/tfctl/revdiff/internal/model"
)

// ContentHasher turns a value's comparable state into a digest. It must be
// deterministic for identical logical state and stable across processes,
// since hash chains outlive the process that wrote them.
type ContentHasher interface {
	Hash(v any, ignore []string) (string, error)
}

// SHA256 is the default ContentHasher. It hashes the canonical JSON form of
// the scrubbed value and returns the lowercase hex digest.
type SHA256 struct{}

var _ ContentHasher = SHA256{}

// Hash implements ContentHasher. Domain objects are reduced to their
// comparable state first; map values have ignored names scrubbed; any other
// value is hashed as is.
func (SHA256) Hash(v any, ignore []string) (string, error) {
	canon, err := Canonical(v, ignore)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

// Canonical returns the canonical JSON encoding used for hashing: the value
// is normalized, scrubbed, and encoded with sorted keys and no HTML escaping.
func Canonical(v any, ignore []string) ([]byte, error) {
	var norm any
	switch v := v.(type) {
	case *model.Object:
		if v == nil {
			return []byte("null"), nil
		}
		m, err := Comparable(v, ignore)
		if err != nil {
			return nil, err
		}
		norm = m
	default:
		n, err := Normalize(v)
		if err != nil {
			return nil, err
		}
		if m, ok := n.(map[string]any); ok {
			model.Scrub(m, ignore)
		}
		norm = n
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm); err != nil {
		return nil, fmt.Errorf("failed to encode canonical form: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Normalize converts v into the JSON data model by a JSON round trip through
// model.DecodeJSON. Values built in Go with ints or typed slices compare
// equal to the same values decoded from disk, and integers too large for
// float64 keep every digit.
func Normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %T: %w", v, err)
	}
	out, err := model.DecodeJSON(b)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %T: %w", v, err)
	}
	return out, nil
}

// NormalizeMap is Normalize for maps.
func NormalizeMap(m map[string]any) (map[string]any, error) {
	n, err := Normalize(m)
	if err != nil {
		return nil, err
	}
	out, _ := n.(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// Comparable returns the normalized comparable state of o. The body is
// normalized before ignored names are scrubbed, so nested values built in Go
// are scrubbed the same as values decoded from disk.
func Comparable(o *model.Object, ignore []string) (map[string]any, error) {
	body, err := NormalizeMap(o.Body())
	if err != nil {
		return nil, err
	}
	model.Scrub(body, ignore)
	return body, nil
}

// Prepare deep-copies objects and scrubs ignored names from the copies, so
// an equivalence check over the result never observes ignorable fields. The
// hash fragment survives only when Fragments is not ignored.
func Prepare(objs []*model.Object, ignore []string) ([]*model.Object, error) {
	out := make([]*model.Object, 0, len(objs))
	for i, o := range objs {
		if o == nil {
			return nil, fmt.Errorf("object %d is nil", i)
		}
		body, err := Comparable(o, ignore)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		p, err := model.FromMap(body)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
