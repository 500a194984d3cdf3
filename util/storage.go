// util/storage.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/grape-tools/doc29/log"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

var ErrBadDestination = errors.New("invalid output destination")

// StorageBackend is the terminal sink for everything the tools write.
// Paths passed to Store are relative to the destination the backend was
// created for and always use forward slashes.
type StorageBackend interface {
	Store(path string, r io.Reader) (int64, error)
	Close()
}

// MakeStorageBackend returns a StorageBackend for the given destination:
// "gs://bucket/prefix" for Google Cloud Storage, "s3://bucket/prefix" for
// Amazon S3 and anything else for a directory on the local filesystem.
func MakeStorageBackend(ctx context.Context, dest string) (StorageBackend, error) {
	switch {
	case strings.HasPrefix(dest, "gs://"):
		bucket, prefix, err := splitBucketPath(strings.TrimPrefix(dest, "gs://"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dest, err)
		}
		return MakeGCSBackend(ctx, bucket, prefix)

	case strings.HasPrefix(dest, "s3://"):
		bucket, prefix, err := splitBucketPath(strings.TrimPrefix(dest, "s3://"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dest, err)
		}
		return MakeS3Backend(ctx, bucket, prefix)

	default:
		if dest == "" {
			return nil, fmt.Errorf("empty path: %w", ErrBadDestination)
		}
		return LocalBackend{Root: dest}, nil
	}
}

func splitBucketPath(s string) (string, string, error) {
	bucket, prefix, _ := strings.Cut(s, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("no bucket name: %w", ErrBadDestination)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

///////////////////////////////////////////////////////////////////////////
// LocalBackend

type LocalBackend struct {
	Root string
}

func (l LocalBackend) Store(p string, r io.Reader) (int64, error) {
	fn := filepath.Join(l.Root, filepath.FromSlash(p))
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return 0, err
	}

	f, err := os.Create(fn)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		return n, err
	}
	return n, f.Close()
}

func (l LocalBackend) Close() {}

///////////////////////////////////////////////////////////////////////////
// GCSBackend

type GCSBackend struct {
	ctx    context.Context
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

// MakeGCSBackend creates a backend that writes objects under prefix in
// the given bucket. Service account credentials are taken from the
// DOC29_GCS_CREDENTIALS environment variable if it is set and from the
// application default credentials otherwise.
func MakeGCSBackend(ctx context.Context, bucketName, prefix string) (StorageBackend, error) {
	var opts []option.ClientOption
	if credsJSON := os.Getenv("DOC29_GCS_CREDENTIALS"); credsJSON != "" {
		creds, err := google.CredentialsFromJSON(ctx, []byte(credsJSON), storage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("DOC29_GCS_CREDENTIALS: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSBackend{
		ctx:    ctx,
		client: client,
		bucket: client.Bucket(bucketName),
		prefix: prefix,
	}, nil
}

func (g *GCSBackend) Store(p string, r io.Reader) (int64, error) {
	objw := g.bucket.Object(path.Join(g.prefix, p)).NewWriter(g.ctx)
	n, err := io.Copy(objw, r)
	if err != nil {
		objw.Close()
		return n, err
	}
	return n, objw.Close()
}

func (g *GCSBackend) Close() { g.client.Close() }

///////////////////////////////////////////////////////////////////////////
// S3Backend

type S3Backend struct {
	ctx    context.Context
	client *s3.Client
	bucket string
	prefix string
}

// MakeS3Backend creates a backend that writes objects under prefix in the
// given bucket. The standard AWS configuration chain is used unless
// DOC29_S3_ACCESS_KEY and DOC29_S3_SECRET_KEY are set; DOC29_S3_ENDPOINT
// selects an S3-compatible service other than AWS.
func MakeS3Backend(ctx context.Context, bucket, prefix string) (StorageBackend, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if key, secret := os.Getenv("DOC29_S3_ACCESS_KEY"), os.Getenv("DOC29_S3_SECRET_KEY"); key != "" && secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, "")))
	}
	if region := os.Getenv("DOC29_S3_REGION"); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	endpoint := os.Getenv("DOC29_S3_ENDPOINT")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Backend{
		ctx:    ctx,
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *S3Backend) Store(p string, r io.Reader) (int64, error) {
	// PutObject needs a seekable body to sign the payload.
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	_, err = s.client.PutObject(s.ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path.Join(s.prefix, p)),
		Body:   bytes.NewReader(b),
	})
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

func (s *S3Backend) Close() {}

///////////////////////////////////////////////////////////////////////////
// DryRunBackend

// DryRunBackend consumes everything it is given without storing it.
type DryRunBackend struct{}

func (DryRunBackend) Store(p string, r io.Reader) (int64, error) {
	return io.Copy(io.Discard, r)
}

func (DryRunBackend) Close() {}

///////////////////////////////////////////////////////////////////////////
// TrackingBackend

// TrackingBackend wraps another StorageBackend and records how many
// objects and bytes were stored through it. It may be used concurrently.
type TrackingBackend struct {
	StorageBackend

	mu      sync.Mutex
	objects int
	bytes   int64
}

func NewTrackingBackend(sb StorageBackend) *TrackingBackend {
	return &TrackingBackend{StorageBackend: sb}
}

func (t *TrackingBackend) Store(p string, r io.Reader) (int64, error) {
	n, err := t.StorageBackend.Store(p, r)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.bytes += n
	if err == nil {
		t.objects++
	}
	return n, err
}

// Stats returns the number of objects successfully stored and the total
// number of bytes written.
func (t *TrackingBackend) Stats() (int, int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.objects, t.bytes
}

func (t *TrackingBackend) ReportStats(lg *log.Logger) {
	n, b := t.Stats()
	lg.Info("storage", "objects", n, "bytes", b)
}
