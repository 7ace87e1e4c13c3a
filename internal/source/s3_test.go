package source

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/csvasset/internal/config"
)

// fakeBucket serves objects from a map keyed by object key.
type fakeBucket struct {
	objects map[string]string
	err     error
	keys    []string
}

func (b *fakeBucket) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	b.keys = append(b.keys, key)
	if b.err != nil {
		return nil, b.err
	}
	body, ok := b.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
	}, nil
}

func TestS3Source_Key(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "a.csv"},
		{"csv", "csv/a.csv"},
		{"csv/", "csv/a.csv"},
	}
	for _, tt := range tests {
		s := &S3Source{Prefix: tt.prefix}
		assert.Equal(t, tt.want, s.Key("a.csv"), "prefix %q", tt.prefix)
	}
}

func TestS3Source_Read(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{"csv/a.csv": "h\nv"}}
	src := &S3Source{Client: bucket, Bucket: "assets", Prefix: "csv"}

	got, err := src.Read(context.Background(), "a.csv")
	require.NoError(t, err)
	assert.Equal(t, "h\nv", got)
	assert.Equal(t, []string{"csv/a.csv"}, bucket.keys)
}

func TestS3Source_ReadMaterialized(t *testing.T) {
	cache := t.TempDir()
	bucket := &fakeBucket{objects: map[string]string{"a.csv": "remote"}}
	src := &S3Source{Client: bucket, Bucket: "assets", CacheDir: cache}

	got, err := src.Read(context.Background(), "a.csv")
	require.NoError(t, err)
	assert.Equal(t, "remote", got)

	onDisk, err := os.ReadFile(filepath.Join(cache, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "remote", string(onDisk))
}

func TestS3Source_MissingObject(t *testing.T) {
	src := &S3Source{Client: &fakeBucket{}, Bucket: "assets"}
	_, err := src.Read(context.Background(), "a.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3Source_NotFoundAPIError(t *testing.T) {
	src := &S3Source{Client: &fakeBucket{err: &smithy.GenericAPIError{Code: "NotFound"}}, Bucket: "assets"}
	_, err := src.Read(context.Background(), "a.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3Source_OtherErrorIsWrapped(t *testing.T) {
	boom := errors.New("network unreachable")
	src := &S3Source{Client: &fakeBucket{err: boom}, Bucket: "assets"}

	_, err := src.Read(context.Background(), "a.csv")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestS3Source_TooLarge(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{"a.csv": strings.Repeat("z", 100)}}
	src := &S3Source{Client: bucket, Bucket: "assets", MaxBytes: 10}

	_, err := src.Read(context.Background(), "a.csv")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestBuild_Order(t *testing.T) {
	cfg := config.SourceConfig{DataDir: ".", DataOffset: "data", AssetDir: "data", MaxBytes: 1024}

	r := Build(cfg, nil, nil)
	assert.Equal(t, []string{"local"}, r.Sources())

	r = Build(cfg, fstest.MapFS{}, &fakeBucket{})
	assert.Equal(t, []string{"local", "asset"}, r.Sources(), "s3 needs a bucket")

	cfg.S3Bucket = "assets"
	r = Build(cfg, fstest.MapFS{}, &fakeBucket{})
	assert.Equal(t, []string{"local", "asset", "s3"}, r.Sources())
}

func TestBuild_LocalThenAssetThenRemote(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "data", "local.csv"), []byte("local"), 0o644))

	var bundled fs.FS = fstest.MapFS{
		"data/local.csv":  &fstest.MapFile{Data: []byte("bundled-shadowed")},
		"data/bundle.csv": &fstest.MapFile{Data: []byte("bundled")},
	}
	bucket := &fakeBucket{objects: map[string]string{"remote.csv": "remote", "bundle.csv": "remote-shadowed"}}

	cfg := config.SourceConfig{DataDir: base, DataOffset: "data", AssetDir: "data", S3Bucket: "assets", MaxBytes: 1024}
	r := Build(cfg, bundled, bucket)

	cases := map[string]Resolved{
		"local.csv":  {Content: "local", Source: "local"},
		"bundle.csv": {Content: "bundled", Source: "asset"},
		"remote.csv": {Content: "remote", Source: "s3"},
	}
	for name, want := range cases {
		got, err := r.Resolve(context.Background(), name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := r.Resolve(context.Background(), "absent.csv")
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Len(t, exhausted.Attempts, 3)
}
