// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Reserved top-level keys of the JSON form of an Object.
const (
	GuidField       = "BHoM_Guid"
	CustomDataField = "CustomData"
	FragmentsField  = "Fragments"

	// HashFragmentKey is the key of the hash fragment within Fragments.
	HashFragmentKey = "HashFragment"
)

// HashFragment is the identity descriptor stamped on an object by the
// persistence layer. An empty PreviousHash means the object has no known
// ancestor.
type HashFragment struct {
	Hash         string `json:"Hash" yaml:"hash"`
	PreviousHash string `json:"PreviousHash,omitempty" yaml:"previousHash,omitempty"`
}

// HasPrevious reports whether the fragment links to an ancestor revision.
func (h HashFragment) HasPrevious() bool {
	return h.PreviousHash != ""
}

// Object is a domain object: a bag of named properties plus a free-form
// custom-data area and detachable fragments.
//
// The JSON form is flat. Every key other than BHoM_Guid, CustomData and
// Fragments is a property. The hash fragment, when present, lives at
// Fragments.HashFragment.
type Object struct {
	Guid       string
	Properties map[string]any
	CustomData map[string]any
	Fragments  map[string]any
	Hash       *HashFragment
}

// New returns an Object with the given properties.
func New(props map[string]any) *Object {
	if props == nil {
		props = map[string]any{}
	}
	return &Object{Properties: props}
}

// WithHash attaches a hash fragment and returns the object for chaining.
func (o *Object) WithHash(hash, previous string) *Object {
	o.Hash = &HashFragment{Hash: hash, PreviousHash: previous}
	return o
}

// WithCustom sets a custom-data value and returns the object for chaining.
func (o *Object) WithCustom(name string, value any) *Object {
	if o.CustomData == nil {
		o.CustomData = map[string]any{}
	}
	o.CustomData[name] = value
	return o
}

// HashFragment returns the attached hash fragment, if any.
func (o *Object) HashFragment() (HashFragment, bool) {
	if o == nil || o.Hash == nil {
		return HashFragment{}, false
	}
	return *o.Hash, true
}

// CustomValue returns the custom-data value stored under name rendered as a
// string. Numbers decoded from JSON print without a trailing ".0".
func (o *Object) CustomValue(name string) (string, bool) {
	if o == nil || o.CustomData == nil {
		return "", false
	}
	v, ok := o.CustomData[name]
	if !ok || v == nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, v != ""
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v)), true
		}
		return fmt.Sprintf("%g", v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// Body returns the full flat representation of the object, reserved keys
// included. The returned map shares no mutable state with o.
func (o *Object) Body() map[string]any {
	body := make(map[string]any, len(o.Properties)+3)
	for k, v := range o.Properties {
		body[k] = DeepCopy(v)
	}
	if o.Guid != "" {
		body[GuidField] = o.Guid
	}
	if len(o.CustomData) > 0 {
		body[CustomDataField] = DeepCopy(o.CustomData)
	}
	frags := map[string]any{}
	for k, v := range o.Fragments {
		frags[k] = DeepCopy(v)
	}
	if o.Hash != nil {
		hf := map[string]any{"Hash": o.Hash.Hash}
		if o.Hash.PreviousHash != "" {
			hf["PreviousHash"] = o.Hash.PreviousHash
		}
		frags[HashFragmentKey] = hf
	}
	if len(frags) > 0 {
		body[FragmentsField] = frags
	}
	return body
}

// Comparable returns the object's comparable state: its body with every
// ignored name removed as Scrub does. Bare names ("BHoM_Guid") apply at any
// depth; dotted paths ("CustomData.id", "Section.Area") apply once.
func (o *Object) Comparable(ignore []string) map[string]any {
	body := o.Body()
	Scrub(body, ignore)
	return body
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	c := &Object{Guid: o.Guid}
	if o.Properties != nil {
		c.Properties = DeepCopy(o.Properties).(map[string]any)
	}
	if o.CustomData != nil {
		c.CustomData = DeepCopy(o.CustomData).(map[string]any)
	}
	if o.Fragments != nil {
		c.Fragments = DeepCopy(o.Fragments).(map[string]any)
	}
	if o.Hash != nil {
		hf := *o.Hash
		c.Hash = &hf
	}
	return c
}

// Label returns a short human identifier for logs and text output: the
// current hash when stamped, else the guid, else "?".
func (o *Object) Label() string {
	switch {
	case o == nil:
		return "?"
	case o.Hash != nil && o.Hash.Hash != "":
		return o.Hash.Hash
	case o.Guid != "":
		return o.Guid
	default:
		return "?"
	}
}

// PropertyNames returns the sorted property names.
func (o *Object) PropertyNames() []string {
	names := make([]string, 0, len(o.Properties))
	for k := range o.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON writes the flat form.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Body())
}

// UnmarshalJSON reads the flat form.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	body, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("object must be a JSON object, got %T", v)
	}
	obj, err := FromMap(body)
	if err != nil {
		return err
	}
	*o = *obj
	return nil
}

// MarshalYAML renders the flat form.
func (o *Object) MarshalYAML() (interface{}, error) {
	return o.Body(), nil
}

// FromMap builds an Object from its flat form. The map is not retained.
func FromMap(body map[string]any) (*Object, error) {
	o := &Object{Properties: map[string]any{}}
	for k, v := range body {
		switch k {
		case GuidField:
			s, ok := v.(string)
			if !ok && v != nil {
				return nil, fmt.Errorf("%s must be a string, got %T", GuidField, v)
			}
			o.Guid = s
		case CustomDataField:
			if v == nil {
				continue
			}
			m, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s must be an object, got %T", CustomDataField, v)
			}
			o.CustomData = DeepCopy(m).(map[string]any)
		case FragmentsField:
			if v == nil {
				continue
			}
			m, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s must be an object, got %T", FragmentsField, v)
			}
			if err := o.readFragments(m); err != nil {
				return nil, err
			}
		default:
			o.Properties[k] = DeepCopy(v)
		}
	}
	return o, nil
}

func (o *Object) readFragments(m map[string]any) error {
	for k, v := range m {
		if k != HashFragmentKey {
			if o.Fragments == nil {
				o.Fragments = map[string]any{}
			}
			o.Fragments[k] = DeepCopy(v)
			continue
		}
		hf, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s.%s must be an object, got %T", FragmentsField, HashFragmentKey, v)
		}
		frag := &HashFragment{}
		if s, ok := hf["Hash"].(string); ok {
			frag.Hash = s
		}
		if s, ok := hf["PreviousHash"].(string); ok {
			frag.PreviousHash = s
		}
		o.Hash = frag
	}
	return nil
}

// Scrub removes ignored names from m in place. A name without a dot matches
// that key at every depth, inside nested maps and lists. A dotted name is an
// exact path from the top; a path through a non-map value is left alone.
func Scrub(m map[string]any, ignore []string) {
	bare := map[string]struct{}{}
	for _, name := range ignore {
		if name == "" {
			continue
		}
		if !strings.Contains(name, ".") {
			bare[name] = struct{}{}
			continue
		}
		if _, ok := m[name]; ok {
			delete(m, name)
			continue
		}
		parts := strings.Split(name, ".")
		cur := m
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				cur = nil
				break
			}
			cur = next
		}
		if cur != nil {
			delete(cur, parts[len(parts)-1])
		}
	}
	if len(bare) > 0 {
		scrubNames(m, bare)
	}
}

func scrubNames(v any, names map[string]struct{}) {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			if _, ok := names[k]; ok {
				delete(v, k)
				continue
			}
			scrubNames(e, names)
		}
	case []any:
		for _, e := range v {
			scrubNames(e, names)
		}
	}
}

// DeepCopy copies maps and slices recursively. Scalars are returned as is.
func DeepCopy(v any) any {
	switch v := v.(type) {
	case map[string]any:
		c := make(map[string]any, len(v))
		for k, e := range v {
			c[k] = DeepCopy(e)
		}
		return c
	case []any:
		c := make([]any, len(v))
		for i, e := range v {
			c[i] = DeepCopy(e)
		}
		return c
	default:
		return v
	}
}
