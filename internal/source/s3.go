package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ObjectGetter is the part of the S3 API the remote source uses.
// *s3.Client satisfies it.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads datasets from a remote asset bucket.
type S3Source struct {
	Client   ObjectGetter
	Bucket   string
	Prefix   string
	CacheDir string
	MaxBytes int64
}

func (s *S3Source) Name() string { return "s3" }

// Key returns the object key filename maps to.
func (s *S3Source) Key(filename string) string {
	if s.Prefix == "" {
		return filename
	}
	return strings.TrimSuffix(s.Prefix, "/") + "/" + filename
}

// Read downloads the object and returns its content, materializing it to
// CacheDir first when one is configured.
func (s *S3Source) Read(ctx context.Context, filename string) (string, error) {
	key := s.Key(filename)

	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isMissingObject(err) {
			return "", fmt.Errorf("%w: s3://%s/%s", ErrNotFound, s.Bucket, key)
		}
		return "", fmt.Errorf("failed to get object %s from bucket %s: %w", key, s.Bucket, err)
	}
	defer resp.Body.Close()

	if s.MaxBytes > 0 && resp.ContentLength != nil && *resp.ContentLength > s.MaxBytes {
		return "", fmt.Errorf("%w: s3://%s/%s is %d bytes, limit %d",
			ErrTooLarge, s.Bucket, key, *resp.ContentLength, s.MaxBytes)
	}

	if s.CacheDir == "" {
		return ReadLimited(resp.Body, s.MaxBytes)
	}

	local, err := materialize(ctx, s.CacheDir, filename, resp.Body, s.MaxBytes)
	if err != nil {
		return "", err
	}
	return readMaterialized(local)
}

// isMissingObject reports whether err is S3's "no such key" in either of the
// shapes the SDK produces (typed for GetObject, bare code for HEAD-style 404s).
func isMissingObject(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
