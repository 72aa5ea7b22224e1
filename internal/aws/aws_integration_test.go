// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_FetchSnapshot round-trips a snapshot through a real bucket
// using the default credential chain.
func TestIntegration_FetchSnapshot(t *testing.T) {
	ctx := context.Background()

	client, err := NewClient(ctx, WithRegion("us-east-1"))
	require.NoError(t, err)

	bucket := fmt.Sprintf("revdiff-test-%d", time.Now().UnixNano())
	key := "rev/1.json"
	body := []byte(`[{"Name":"wall","Fragments":{"HashFragment":{"Hash":"h1"}}}]`)

	_, err = client.CreateBucket(ctx, &s3v2.CreateBucketInput{Bucket: awsv2.String(bucket)})
	require.NoError(t, err)
	defer func() {
		client.DeleteObject(ctx, &s3v2.DeleteObjectInput{Bucket: awsv2.String(bucket), Key: awsv2.String(key)}) //nolint:errcheck
		client.DeleteBucket(ctx, &s3v2.DeleteBucketInput{Bucket: awsv2.String(bucket)})                         //nolint:errcheck
	}()

	_, err = client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
		Body:   bytes.NewReader(body),
	})
	require.NoError(t, err)

	loc, err := ParseURI("s3://" + bucket + "/" + key)
	require.NoError(t, err)

	f := NewFetcher(client)
	got, etag, err := f.Get(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, body, got)

	head, err := f.ETag(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, etag, head)
}
