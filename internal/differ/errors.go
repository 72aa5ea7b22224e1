// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
)

// Snapshot sides, as reported in errors.
const (
	SidePrevious = "previous"
	SideCurrent  = "current"
)

// ErrUnsupported is returned for inputs no diffing path can handle.
var ErrUnsupported = errors.New("unsupported input")

// MissingIdentityError reports an object without the identity its diffing
// path requires: a hash fragment with a Hash, or a value at the external id
// field. It aborts the call.
type MissingIdentityError struct {
	Side  string
	Index int
	Field string
}

func (e *MissingIdentityError) Error() string {
	return fmt.Sprintf("%s object %d has no %s", e.Side, e.Index, e.Field)
}

// AmbiguousMatchError reports two objects on the same side sharing an
// identity. In strict mode it aborts the call; otherwise it is recorded as a
// warning and the later object wins.
type AmbiguousMatchError struct {
	Side     string
	Identity string
	First    int
	Second   int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%s objects %d and %d share identity %q", e.Side, e.First, e.Second, e.Identity)
}

// InconsistentHashStateError reports a current object whose PreviousHash
// matches neither its own Hash nor any previous object. It never aborts a
// call: the object is classified Modified without a property diff.
type InconsistentHashStateError struct {
	Index        int
	Hash         string
	PreviousHash string
}

func (e *InconsistentHashStateError) Error() string {
	return fmt.Sprintf("current object %d (%s) names unknown previous hash %s", e.Index, e.Hash, e.PreviousHash)
}
