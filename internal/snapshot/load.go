// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tfctl/revdiff/internal/aws"
	"github.com/tfctl/revdiff/internal/cacheutil"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/model"
)

// Options controls how a snapshot source is read.
type Options struct {
	// Path is a gjson query selecting the snapshot array inside the document.
	Path string
	// Passphrase is consulted only when the document is encrypted.
	Passphrase func() (string, error)
	// Stdin is read for the "-" source. Defaults to os.Stdin.
	Stdin io.Reader
	// Fetcher reads s3:// sources. When nil one is built from AWS.
	Fetcher *aws.Fetcher
	// AWS customizes the default S3 client.
	AWS []aws.Option
}

// Load reads, decrypts when needed, and parses the snapshot at src: a file
// path, "-" for stdin, or an s3://bucket/key URI.
func Load(ctx context.Context, src string, opts Options) ([]model.Item, error) {
	data, err := Read(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	items, err := Parse(data, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	log.Debugf("loaded %s: items=%d", src, len(items))
	return items, nil
}

// Read returns the plain document at src, decrypting an envelope with the
// passphrase from opts.
func Read(ctx context.Context, src string, opts Options) ([]byte, error) {
	data, err := readRaw(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	if !IsEncrypted(data) {
		return data, nil
	}

	if opts.Passphrase == nil {
		return nil, fmt.Errorf("%s is encrypted and no passphrase is available", src)
	}
	passphrase, err := opts.Passphrase()
	if err != nil {
		return nil, err
	}
	plain, err := Decrypt(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return plain, nil
}

func readRaw(ctx context.Context, src string, opts Options) ([]byte, error) {
	switch {
	case src == "-":
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	case aws.IsURI(src):
		return readS3(ctx, src, opts)
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		return data, nil
	}
}

// readS3 serves an S3 object from the local cache when the cached copy has
// the object's current entity tag.
func readS3(ctx context.Context, src string, opts Options) ([]byte, error) {
	loc, err := aws.ParseURI(src)
	if err != nil {
		return nil, err
	}

	f := opts.Fetcher
	if f == nil {
		client, err := aws.NewClient(ctx, opts.AWS...)
		if err != nil {
			return nil, fmt.Errorf("failed to configure s3: %w", err)
		}
		f = aws.NewFetcher(client)
	}

	etag, err := f.ETag(ctx, loc)
	if err != nil {
		return nil, err
	}
	if data, ok := cacheutil.Snapshot(loc.String(), etag); ok {
		return data, nil
	}

	body, _, err := f.Get(ctx, loc)
	if err != nil {
		return nil, err
	}
	if err := cacheutil.StoreSnapshot(loc.String(), etag, body); err != nil {
		log.WithError(err).Warnf("failed to cache %s", src)
	}
	return body, nil
}

// Write encodes objects as a snapshot document, sealing it when passphrase
// is set.
func Write(w io.Writer, objs []*model.Object, passphrase string) error {
	data, err := Encode(objs)
	if err != nil {
		return err
	}
	if passphrase != "" {
		if data, err = Encrypt(data, passphrase); err != nil {
			return err
		}
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
