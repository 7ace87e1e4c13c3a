package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the slice of the OS file API the local source needs.
// Tests substitute an in-memory implementation.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Stat returns file info for name.
func (OSFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile reads the entire file at name.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// LocalSource reads datasets provisioned on the local filesystem under
// BaseDir/Offset.
type LocalSource struct {
	FS       FileSystem
	BaseDir  string
	Offset   string
	MaxBytes int64
}

// NewLocalSource creates a local source on the OS file system.
func NewLocalSource(baseDir, offset string, maxBytes int64) *LocalSource {
	return &LocalSource{FS: OSFS{}, BaseDir: baseDir, Offset: offset, MaxBytes: maxBytes}
}

func (s *LocalSource) Name() string { return "local" }

// Path returns the filesystem path filename maps to.
func (s *LocalSource) Path(filename string) string {
	return filepath.Join(s.BaseDir, s.Offset, filepath.FromSlash(filename))
}

// Read checks that the file exists and returns its content.
// A failed existence check is reported as ErrNotFound, same as absence.
func (s *LocalSource) Read(ctx context.Context, filename string) (string, error) {
	p := s.Path(filename)

	info, err := s.FS.Stat(p)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotFound, p, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, p)
	}
	if s.MaxBytes > 0 && info.Size() > s.MaxBytes {
		return "", fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, p, info.Size(), s.MaxBytes)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := s.FS.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return "", fmt.Errorf("%w: %s grew past %d bytes", ErrTooLarge, p, s.MaxBytes)
	}
	return string(data), nil
}
