// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/revdiff/internal/differ"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/model"
	"github.com/tfctl/revdiff/internal/revstore"
)

// Format selects a renderer.
type Format string

// Supported formats.
const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", Text:
		return Text, nil
	case JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Options tunes text rendering.
type Options struct {
	Color       bool
	Titles      bool
	Padding     int
	Sort        string
	ShowChanges bool

	// ErrWriter receives text-mode warnings, keeping them out of the change
	// table. Nil drops them; they are already logged.
	ErrWriter io.Writer
}

// Report is the structured form of a diff for json and yaml output.
type Report struct {
	Summary            differ.Counts                              `json:"summary" yaml:"summary"`
	Added              []*model.Object                            `json:"added" yaml:"added"`
	Removed            []*model.Object                            `json:"removed" yaml:"removed"`
	Modified           []*model.Object                            `json:"modified" yaml:"modified"`
	Unchanged          []*model.Object                            `json:"unchanged,omitempty" yaml:"unchanged,omitempty"`
	ModifiedProperties map[string]map[string]differ.PropertyDelta `json:"modifiedProperties,omitempty" yaml:"modifiedProperties,omitempty"`
	Opaque             *OpaqueReport                              `json:"opaque,omitempty" yaml:"opaque,omitempty"`
	Warnings           []string                                   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// OpaqueReport lists the non-object values that changed.
type OpaqueReport struct {
	Added     []any `json:"added" yaml:"added"`
	Removed   []any `json:"removed" yaml:"removed"`
	Unchanged []any `json:"unchanged,omitempty" yaml:"unchanged,omitempty"`
}

// NewReport builds the structured form of d.
func NewReport(d *differ.ItemsDiff) Report {
	o := d.Objects
	r := Report{
		Summary:            o.Counts(),
		Added:              nonNil(o.Added),
		Removed:            nonNil(o.Removed),
		Modified:           nonNil(o.Modified),
		Unchanged:          o.Unchanged,
		ModifiedProperties: o.ModifiedProperties,
	}
	if len(d.OpaqueAdded)+len(d.OpaqueRemoved)+len(d.OpaqueUnchanged) > 0 {
		r.Opaque = &OpaqueReport{
			Added:     nonNilAny(d.OpaqueAdded),
			Removed:   nonNilAny(d.OpaqueRemoved),
			Unchanged: d.OpaqueUnchanged,
		}
	}
	for _, w := range o.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
	return r
}

// Render writes d to w in the given format.
func Render(w io.Writer, d *differ.ItemsDiff, format Format, opts Options) error {
	switch format {
	case JSON:
		return writeJSON(w, NewReport(d))
	case YAML:
		return writeYAML(w, NewReport(d))
	default:
		return renderText(w, d, opts)
	}
}

// RenderVenn writes a hash-comparing result to w.
func RenderVenn(w io.Writer, v differ.VennDiagram[*model.Object], format Format, opts Options) error {
	switch format {
	case JSON:
		return writeJSON(w, v)
	case YAML:
		return writeYAML(w, v)
	}

	fmt.Fprintf(w, "only A %s  only B %s  both %s\n",
		humanize.Comma(int64(len(v.OnlyA))),
		humanize.Comma(int64(len(v.OnlyB))),
		humanize.Comma(int64(len(v.Both))))

	var rows []map[string]interface{}
	for _, o := range v.OnlyA {
		rows = append(rows, row("<", "object", o.Label(), propertyList(o)))
	}
	for _, o := range v.OnlyB {
		rows = append(rows, row(">", "object", o.Label(), propertyList(o)))
	}
	SortDataset(rows, opts.Sort)
	TableWriter(rows, changeColumns, opts, w)
	return nil
}

// RenderRevisions writes a revision listing to w.
func RenderRevisions(w io.Writer, revs []revstore.Revision, format Format, opts Options) error {
	switch format {
	case JSON:
		return writeJSON(w, revs)
	case YAML:
		return writeYAML(w, revs)
	}

	rows := make([]map[string]interface{}, 0, len(revs))
	for _, r := range revs {
		rows = append(rows, map[string]interface{}{
			"id":      float64(r.ID),
			"label":   r.Label,
			"objects": humanize.Comma(int64(r.Objects)),
			"created": r.Created.Format("2006-01-02T15:04:05Z") + " (" + humanize.Time(r.Created) + ")",
		})
	}
	SortDataset(rows, opts.Sort)
	TableWriter(rows, []string{"id", "label", "objects", "created"}, opts, w)
	return nil
}

// RenderObject writes a single object to w. Text is indented JSON.
func RenderObject(w io.Writer, o *model.Object, format Format) error {
	if format == YAML {
		return writeYAML(w, o)
	}
	return writeJSON(w, o)
}

var changeColumns = []string{"status", "kind", "key", "properties"}

func renderText(w io.Writer, d *differ.ItemsDiff, opts Options) error {
	o := d.Objects
	c := o.Counts()
	fmt.Fprintf(w, "added %s  removed %s  modified %s  unchanged %s\n",
		humanize.Comma(int64(c.Added+len(d.OpaqueAdded))),
		humanize.Comma(int64(c.Removed+len(d.OpaqueRemoved))),
		humanize.Comma(int64(c.Modified)),
		humanize.Comma(int64(c.Unchanged+len(d.OpaqueUnchanged))))

	var rows []map[string]interface{}
	for _, obj := range o.Added {
		rows = append(rows, row("+", "object", o.Key(obj), propertyList(obj)))
	}
	for _, obj := range o.Removed {
		rows = append(rows, row("-", "object", o.Key(obj), propertyList(obj)))
	}
	for _, obj := range o.Modified {
		key := o.Key(obj)
		props := strings.Join(o.ChangedProperties(key), ",")
		rows = append(rows, row("~", "object", key, props))
	}
	for _, v := range d.OpaqueAdded {
		rows = append(rows, row("+", "value", InterfaceToString(v, "null"), ""))
	}
	for _, v := range d.OpaqueRemoved {
		rows = append(rows, row("-", "value", InterfaceToString(v, "null"), ""))
	}
	SortDataset(rows, opts.Sort)
	TableWriter(rows, changeColumns, opts, w)

	if opts.ShowChanges {
		for _, p := range o.ModifiedPairs {
			if p.A == nil {
				continue
			}
			delta, err := differ.RenderChange(p.A, p.B, &o.Config, opts.Color)
			if err != nil {
				return err
			}
			if delta == "" {
				continue
			}
			fmt.Fprintf(w, "\n~ %s\n%s", o.Key(p.B), delta)
		}
	}

	if opts.ErrWriter != nil {
		for _, warn := range o.Warnings {
			fmt.Fprintf(opts.ErrWriter, "warning: %v\n", warn)
		}
	}
	return nil
}

func row(status, kind, key, props string) map[string]interface{} {
	return map[string]interface{}{
		"status":     status,
		"kind":       kind,
		"key":        key,
		"properties": props,
	}
}

func propertyList(o *model.Object) string {
	return strings.Join(o.PropertyNames(), ",")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json output: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		log.Errorf("yaml marshal: %v", err)
		return fmt.Errorf("yaml output: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func nonNil(objs []*model.Object) []*model.Object {
	if objs == nil {
		return []*model.Object{}
	}
	return objs
}

func nonNilAny(v []any) []any {
	if v == nil {
		return []any{}
	}
	return v
}
