// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfctl/revdiff/internal/differ"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/model"
)

// filterRegex parses a filter expression into key, operator and target.
// Operators are one of = ^ ~ < > @ or /, optionally prefixed with '!'.
// Examples: "Name" (key only), "Name=wall", "CustomData.id^A".
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("REVDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		operand, value := parts[2], parts[3]
		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}
		if operand == "" && value == "!" {
			negate, value = true, ""
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   value,
		})
	}

	return filters
}

// Match reports whether o satisfies every filter. Keys are dotted paths into
// the object's flat JSON form. A filter with no operand only requires the
// key to be present.
func Match(o *model.Object, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}
	if o == nil {
		return false
	}

	raw, err := json.Marshal(o.Body())
	if err != nil {
		log.WithError(err).Errorf("filter: cannot encode %s", o.Label())
		return false
	}

	for _, filter := range filters {
		value := Drill(string(raw), filter.Key).Value()
		if value == nil {
			if filter.Negate && filter.Operand == "" {
				continue
			}
			return false
		}
		if filter.Operand == "" {
			if filter.Negate {
				return false
			}
			continue
		}

		var result bool
		if v, ok := value.(string); ok {
			result = checkStringOperand(v, filter)
		} else if v, ok := value.(bool); ok {
			result = checkStringOperand(fmt.Sprintf("%v", v), filter)
		} else if num, ok := toFloat64(value); ok {
			result = checkNumericOperand(num, filter)
		} else if filter.Operand == "@" {
			result = checkContainsOperand(value, filter)
		} else {
			log.Errorf("unsupported type for filter %s: %T", filter.Key, value)
		}

		if !result {
			return false
		}
	}

	return true
}

// Objects returns the objects of objs that match filters, in order.
func Objects(objs []*model.Object, filters []Filter) []*model.Object {
	if len(filters) == 0 {
		return objs
	}
	var out []*model.Object
	for _, o := range objs {
		if Match(o, filters) {
			out = append(out, o)
		}
	}
	return out
}

// Diff narrows d to the objects matching filters. Modified objects are
// matched on their current state and their pairs and property deltas follow
// them. Warnings and opaque values are kept. d is not modified.
func Diff(d *differ.ItemsDiff, filters []Filter) *differ.ItemsDiff {
	if len(filters) == 0 {
		return d
	}

	o := d.Objects
	n := *o
	n.Added = Objects(o.Added, filters)
	n.Removed = Objects(o.Removed, filters)
	n.Unchanged = Objects(o.Unchanged, filters)
	n.Modified, n.ModifiedPairs, n.ModifiedProperties = nil, nil, nil

	for i, m := range o.Modified {
		if !Match(m, filters) {
			continue
		}
		n.Modified = append(n.Modified, m)
		if i < len(o.ModifiedPairs) {
			n.ModifiedPairs = append(n.ModifiedPairs, o.ModifiedPairs[i])
		}
		key := o.Key(m)
		if props, ok := o.ModifiedProperties[key]; ok {
			if n.ModifiedProperties == nil {
				n.ModifiedProperties = map[string]map[string]differ.PropertyDelta{}
			}
			n.ModifiedProperties[key] = props
		}
	}

	out := *d
	out.Objects = &n
	return &out
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against slice or map values.
func checkContainsOperand(value interface{}, filter Filter) bool {
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprint(item) == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]any:
		_, found := val[filter.Value]
		return found == !filter.Negate
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and their negations.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

// toFloat64 normalizes the numeric types gjson and JSON decoding produce.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
