// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	o := apply([]Option{
		WithProfile("snapshots"),
		WithRegion("us-east-1"),
		WithRegion("eu-west-1"),
		WithEndpoint("http://localhost:9000"),
		WithPathStyle(true),
		WithRetryer(func() awsv2.Retryer { return retry.NewStandard() }),
	})

	assert.Equal(t, "snapshots", o.profile)
	assert.Equal(t, "eu-west-1", o.region, "later options win")
	assert.Equal(t, "http://localhost:9000", o.endpoint)
	assert.True(t, o.pathStyle)
	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

func TestS3Options(t *testing.T) {
	assert.Empty(t, s3Options(options{}))

	var so s3v2.Options
	for _, fn := range s3Options(options{endpoint: "http://minio:9000", pathStyle: true}) {
		fn(&so)
	}
	assert.Equal(t, "http://minio:9000", awsv2.ToString(so.BaseEndpoint))
	assert.True(t, so.UsePathStyle)
}

func TestLoadAWSConfigWithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(context.Background(), WithRegion("us-east-1"), WithEndpoint("http://localhost:9000"))
	require.NoError(t, err)
	assert.IsType(t, &s3v2.Client{}, client)
	assert.Equal(t, "http://localhost:9000", awsv2.ToString(client.Options().BaseEndpoint))
}
