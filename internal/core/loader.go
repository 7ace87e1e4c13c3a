package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/csvasset/internal/logging"
	"github.com/JonMunkholm/csvasset/internal/source"
)

// ErrLoad matches every *LoadError via errors.Is.
var ErrLoad = errors.New("dataset load failed")

// LoadError reports that no source could provide a dataset.
type LoadError struct {
	Filename string
	Err      error // underlying cause, usually a *source.ExhaustedError
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %q: %v", e.Filename, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrLoad) match without unwrapping to the cause.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Resolver produces the raw content of a named file.
// *source.Resolver satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, filename string) (source.Resolved, error)
}

// Loader loads datasets through a Resolver and parses them.
//
// A Loader holds no per-call state: concurrent calls for the same file each
// resolve and parse independently.
type Loader struct {
	resolver Resolver
	maxBytes int64
}

// NewLoader creates a loader. maxBytes bounds ParseReader input; zero or
// negative disables the bound.
func NewLoader(resolver Resolver, maxBytes int64) *Loader {
	return &Loader{resolver: resolver, maxBytes: maxBytes}
}

// LoadAssetFile returns the raw text of filename from the first source that
// has it. When every source misses, the failure is logged and returned as a
// *LoadError carrying the filename.
func (l *Loader) LoadAssetFile(ctx context.Context, filename string) (string, error) {
	loadID := uuid.NewString()
	logger := logging.WithFields(ctx, "load_id", loadID, "filename", filename)
	start := time.Now()

	resolved, err := l.resolver.Resolve(ctx, filename)
	if err != nil {
		logger.Error("dataset load failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", &LoadError{Filename: filename, Err: err}
	}

	logger.Info("dataset loaded",
		"source", resolved.Source,
		"bytes", len(resolved.Content),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resolved.Content, nil
}

// LoadAndParse loads filename and splits it into headers and rows.
// Content with no non-blank lines yields an empty table, not an error.
func (l *Loader) LoadAndParse(ctx context.Context, filename string) (Table, error) {
	text, err := l.LoadAssetFile(ctx, filename)
	if err != nil {
		return Table{}, err
	}
	return Parse(text), nil
}

// ParseReader parses CSV supplied directly rather than resolved by name.
// A leading UTF-8 BOM is dropped; input past the loader's size bound fails
// with source.ErrTooLarge.
func (l *Loader) ParseReader(r io.Reader) (Table, error) {
	text, err := source.ReadLimited(NewBOMSkippingReader(r), l.maxBytes)
	if err != nil {
		return Table{}, err
	}
	return Parse(text), nil
}
