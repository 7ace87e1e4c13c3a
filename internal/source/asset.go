package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// AssetSource reads datasets bundled with the application.
//
// Assets live in an fs.FS (an embed.FS in the shipped binary) under Root.
// When CacheDir is set each asset is first materialized to a local file and
// read back from there; otherwise it is read in place.
type AssetSource struct {
	Assets   fs.FS
	Root     string
	CacheDir string
	MaxBytes int64
}

func (s *AssetSource) Name() string { return "asset" }

// Read opens the bundled asset, materializes it and returns its content.
func (s *AssetSource) Read(ctx context.Context, filename string) (string, error) {
	if s.Assets == nil {
		return "", fmt.Errorf("%w: no bundled assets", ErrNotFound)
	}

	name := path.Join(s.Root, filename)
	f, err := s.Assets.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: asset %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("open asset %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat asset %s: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: asset %s is a directory", ErrNotFound, name)
	}

	if s.CacheDir == "" {
		return ReadLimited(f, s.MaxBytes)
	}

	local, err := materialize(ctx, s.CacheDir, filename, f, s.MaxBytes)
	if err != nil {
		return "", err
	}
	return readMaterialized(local)
}

// materialize copies r to CacheDir/filename and returns the local path.
//
// The copy goes to a uniquely named temp file in the destination directory
// and is renamed into place, so concurrent loads of the same asset never
// observe a partial file.
func materialize(ctx context.Context, cacheDir, filename string, r io.Reader, max int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(cacheDir, filepath.FromSlash(filename))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("%w: create cache dir: %v", ErrNotMaterialized, err)
	}

	tmp := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+"."+uuid.NewString()+".tmp")
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotMaterialized, err)
	}

	src := r
	if max > 0 {
		src = io.LimitReader(r, max+1)
	}
	n, copyErr := io.Copy(out, src)
	closeErr := out.Close()

	switch {
	case copyErr != nil:
		os.Remove(tmp)
		return "", fmt.Errorf("%w: copy: %v", ErrNotMaterialized, copyErr)
	case closeErr != nil:
		os.Remove(tmp)
		return "", fmt.Errorf("%w: close: %v", ErrNotMaterialized, closeErr)
	case max > 0 && n > max:
		os.Remove(tmp)
		return "", fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, max)
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: %v", ErrNotMaterialized, err)
	}
	return dst, nil
}

// readMaterialized reads a materialized asset. An empty path or a file that
// vanished before it could be read means materialization produced nothing usable.
func readMaterialized(local string) (string, error) {
	if local == "" {
		return "", ErrNotMaterialized
	}
	data, err := os.ReadFile(local)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrNotMaterialized, local, err)
	}
	return string(data), nil
}
