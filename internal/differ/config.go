// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/revdiff/internal/model"
)

// DefaultPropertiesToIgnore lists the names excluded from comparison unless a
// caller says otherwise: identity, custom data and fragments are bookkeeping,
// not comparable state.
var DefaultPropertiesToIgnore = []string{
	model.GuidField,
	model.CustomDataField,
	model.FragmentsField,
}

// Config controls a diff. Every entry point copies the Config it is given,
// so mutating a Config after the call has started cannot affect the result.
type Config struct {
	// PropertiesToIgnore are top-level names or dotted paths excluded from
	// hashing and property comparison.
	PropertiesToIgnore []string `json:"propertiesToIgnore" yaml:"propertiesToIgnore"`
	// EnablePropertyDiffing computes per-property deltas for modified objects.
	EnablePropertyDiffing bool `json:"enablePropertyDiffing" yaml:"enablePropertyDiffing"`
	// StoreUnchangedObjects keeps unchanged objects in the result.
	StoreUnchangedObjects bool `json:"storeUnchangedObjects" yaml:"storeUnchangedObjects"`
	// Strict turns duplicate identities into an AmbiguousMatchError instead of
	// resolving them last-write-wins.
	Strict bool `json:"strict" yaml:"strict"`
	// Workers bounds parallel per-object classification. Values below 2 run
	// sequentially. Output order does not depend on it.
	Workers int `json:"workers" yaml:"workers"`
}

// Option customizes a Config built by NewConfig.
type Option func(*Config)

// DefaultConfig returns the configuration used when a caller passes nil.
func DefaultConfig() Config {
	return Config{
		PropertiesToIgnore:    append([]string(nil), DefaultPropertiesToIgnore...),
		EnablePropertyDiffing: true,
		StoreUnchangedObjects: true,
	}
}

// NewConfig returns DefaultConfig with opts applied.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithIgnore replaces the ignore list.
func WithIgnore(names ...string) Option {
	return func(c *Config) { c.PropertiesToIgnore = append([]string(nil), names...) }
}

// WithAdditionalIgnore appends to the ignore list.
func WithAdditionalIgnore(names ...string) Option {
	return func(c *Config) { c.PropertiesToIgnore = append(c.PropertiesToIgnore, names...) }
}

// WithPropertyDiffing toggles per-property deltas.
func WithPropertyDiffing(enabled bool) Option {
	return func(c *Config) { c.EnablePropertyDiffing = enabled }
}

// WithStoreUnchanged toggles keeping unchanged objects.
func WithStoreUnchanged(enabled bool) Option {
	return func(c *Config) { c.StoreUnchangedObjects = enabled }
}

// WithStrict toggles strict duplicate-identity handling.
func WithStrict(enabled bool) Option {
	return func(c *Config) { c.Strict = enabled }
}

// WithWorkers sets the classification parallelism.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// resolve returns the independent copy an entry point works with. A nil
// Config resolves to DefaultConfig. The ignore list is copied and
// de-duplicated preserving first occurrence.
func (c *Config) resolve() Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	out.PropertiesToIgnore = dedup(c.PropertiesToIgnore)
	if out.Workers < 0 {
		out.Workers = 0
	}
	return out
}

// Ignores reports whether name is on the ignore list.
func (c Config) Ignores(name string) bool {
	for _, n := range c.PropertiesToIgnore {
		if n == name {
			return true
		}
	}
	return false
}

func dedup(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
