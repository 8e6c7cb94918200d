// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package infra

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	// NoCache is set on HTML so a deploy is visible on the next load
	NoCache = "no-cache"
	// AssetCache is set on everything else
	AssetCache = "public, max-age=86400"
)

type PublishResult struct {
	Files int
	Bytes int64
}

// Publish uploads every regular file under dir to bucket, keyed by its
// slash-separated relative path. Dotfiles are skipped.
func Publish(ctx context.Context, api S3API, bucket, dir string) (PublishResult, error) {
	var result PublishResult

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		n, err := putFile(ctx, api, bucket, key, p)
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		slog.Debug("uploaded asset", "bucket", bucket, "key", key, "bytes", n)
		result.Files++
		result.Bytes += n
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

func putFile(ctx context.Context, api S3API, bucket, key, p string) (int64, error) {
	f, err := os.Open(p)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	_, err = api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(ContentType(key)),
		CacheControl:  aws.String(CacheControl(key)),
	})
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ContentType guesses the MIME type from the key's extension.
func ContentType(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func CacheControl(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".html", ".htm":
		return NoCache
	default:
		return AssetCache
	}
}
