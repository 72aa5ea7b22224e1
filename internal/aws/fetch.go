// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/revdiff/internal/log"
)

// ObjectAPI is the subset of the S3 client a Fetcher uses.
type ObjectAPI interface {
	HeadObject(ctx context.Context, in *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

var _ ObjectAPI = (*s3v2.Client)(nil)

// Location addresses one S3 object.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// IsURI reports whether src uses the s3:// scheme.
func IsURI(src string) bool {
	return strings.HasPrefix(src, "s3://")
}

// ParseURI splits s3://bucket/key into a Location.
func ParseURI(uri string) (Location, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, fmt.Errorf("invalid s3 uri %q: %w", uri, err)
	}
	if u.Scheme != "s3" {
		return Location{}, fmt.Errorf("invalid s3 uri %q: scheme must be s3", uri)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Location{}, fmt.Errorf("invalid s3 uri %q: want s3://bucket/key", uri)
	}
	return Location{Bucket: u.Host, Key: key}, nil
}

// Fetcher reads snapshot bodies from S3.
type Fetcher struct {
	api ObjectAPI
}

// NewFetcher returns a Fetcher backed by api.
func NewFetcher(api ObjectAPI) *Fetcher {
	return &Fetcher{api: api}
}

// ETag returns the entity tag of the object at loc, used to key the local
// cache.
func (f *Fetcher) ETag(ctx context.Context, loc Location) (string, error) {
	out, err := f.api.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to head %s: %w", loc, err)
	}
	return awsv2.ToString(out.ETag), nil
}

// Get downloads the object at loc and returns its body and entity tag.
func (f *Fetcher) Get(ctx context.Context, loc Location) ([]byte, string, error) {
	out, err := f.api.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get %s: %w", loc, err)
	}
	defer out.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", loc, err)
	}
	log.Debugf("s3 get: %s bytes=%d", loc, len(body))
	return body, awsv2.ToString(out.ETag), nil
}
