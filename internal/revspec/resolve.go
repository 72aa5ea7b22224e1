// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package revspec

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tfctl/revdiff/internal/aws"
	"github.com/tfctl/revdiff/internal/revstore"
)

// Source is where one side of a diff comes from: a stored revision, or a
// snapshot path when Revision is nil.
type Source struct {
	Revision *revstore.Revision
	Path     string
}

// String names the source for messages.
func (s Source) String() string {
	if s.Revision != nil {
		return fmt.Sprintf("revision %d (%s)", s.Revision.ID, s.Revision.Label)
	}
	return s.Path
}

// Resolve maps specs to sources against the stored revisions. A spec can be
//
//	HEAD~N - the Nth revision before the newest, HEAD alone is the newest.
//	0, -N  - same as HEAD~N.
//	N      - the revision with id N.
//	path   - an existing file, "-" for stdin or an s3:// URI.
//	label  - the newest revision whose label starts with the spec.
//
// With no specs the two newest revisions are returned, older first.
func Resolve(revs []revstore.Revision, specs ...string) ([]Source, error) {
	// Newest first.
	sorted := append([]revstore.Revision(nil), revs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	if len(specs) == 0 {
		specs = []string{"HEAD~1", "HEAD"}
	}

	result := make([]Source, 0, len(specs))
	for _, spec := range specs {
		src, err := resolveSpec(spec, sorted)
		if err != nil {
			return nil, err
		}
		result = append(result, src)
	}
	return result, nil
}

func resolveSpec(spec string, revs []revstore.Revision) (Source, error) {
	switch {
	case strings.EqualFold(spec, "HEAD"):
		return resolveRelative(0, revs)

	case strings.HasPrefix(strings.ToUpper(spec), "HEAD~"):
		n, err := strconv.Atoi(spec[len("HEAD~"):])
		if err != nil || n < 0 {
			return Source{}, fmt.Errorf("invalid relative spec: %s", spec)
		}
		return resolveRelative(n, revs)

	case isNumeric(spec):
		return resolveNumericSpec(spec, revs)

	case isPath(spec):
		return Source{Path: spec}, nil

	default:
		return resolveLabelSpec(spec, revs)
	}
}

func resolveRelative(index int, revs []revstore.Revision) (Source, error) {
	if index > len(revs)-1 {
		return Source{}, fmt.Errorf("index %d out of range for %d revision(s)", index, len(revs))
	}
	r := revs[index]
	return Source{Revision: &r}, nil
}

// resolveNumericSpec handles a revision id or a non-positive relative index.
func resolveNumericSpec(spec string, revs []revstore.Revision) (Source, error) {
	i, _ := strconv.ParseInt(spec, 10, 64)
	if i <= 0 {
		return resolveRelative(int(-i), revs)
	}

	for _, r := range revs {
		if r.ID == i {
			return Source{Revision: &r}, nil
		}
	}
	return Source{}, fmt.Errorf("%w: id %d", revstore.ErrNotFound, i)
}

func resolveLabelSpec(spec string, revs []revstore.Revision) (Source, error) {
	for _, r := range revs {
		if strings.HasPrefix(r.Label, spec) {
			return Source{Revision: &r}, nil
		}
	}
	return Source{}, fmt.Errorf("%w: no revision or file matches %q", revstore.ErrNotFound, spec)
}

func isNumeric(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isPath(s string) bool {
	if s == "-" || aws.IsURI(s) {
		return true
	}
	info, err := os.Stat(s)
	return err == nil && !info.IsDir()
}
