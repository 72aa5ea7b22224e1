// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows diff results to the objects matching --filter
// expressions.
//
// Filters are key-operator-target expressions joined by a delimiter (comma,
// or REVDIFF_FILTER_DELIM). Keys are dotted paths into an object's flat JSON
// form, e.g. "Name", "CustomData.id" or "Layers[0].Material".
//
// Operators:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < > : ordering, numeric when the value is a number
//   - @ : substring, or membership for arrays and objects
//   - / : regular expression
//
// Every operator may be negated with a leading "!". A key with no operator
// requires the key to be present; "!" alone requires it to be absent.
//
// Examples:
//
//   - "Category=Walls"
//   - "Height>3"
//   - "CustomData.id^EXT-,Name!@temp"
package filters
