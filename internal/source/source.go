// Package source resolves the raw text of a named dataset file.
//
// A Resolver holds an ordered list of Sources and returns the content from
// the first one that can provide it. A miss at any tier is silent; only when
// every tier has missed does the caller see an error, and that error lists
// each attempt. Nothing is remembered between calls: every Resolve walks the
// chain from the start.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/JonMunkholm/csvasset/internal/logging"
)

var (
	// ErrNotFound reports that a source does not hold the requested file.
	ErrNotFound = errors.New("dataset not found")

	// ErrNotMaterialized reports that an asset could not be made locally readable.
	ErrNotMaterialized = errors.New("asset not materialized")

	// ErrTooLarge reports that a file exceeds the configured size limit.
	ErrTooLarge = errors.New("dataset too large")

	// ErrInvalidName reports a filename that is not a usable relative path.
	ErrInvalidName = errors.New("invalid dataset name")
)

// Source provides the raw content of a named file from one location.
type Source interface {
	// Name identifies the source in logs and errors ("local", "asset", "s3").
	Name() string

	// Read returns the full text of filename. Any error is treated as a miss
	// by the Resolver; ErrNotFound marks the ordinary "not here" case.
	Read(ctx context.Context, filename string) (string, error)
}

// Resolved is the outcome of a successful resolution.
type Resolved struct {
	Content string
	Source  string // Name of the source that provided Content
}

// Attempt records one source's failure during resolution.
type Attempt struct {
	Source string
	Err    error
}

// ExhaustedError is returned when no source could provide the file.
type ExhaustedError struct {
	Filename string
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("no source configured for %q", e.Filename)
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Source + ": " + a.Err.Error()
	}
	return fmt.Sprintf("no source could provide %q (%s)", e.Filename, strings.Join(parts, "; "))
}

// Unwrap exposes every attempt's cause to errors.Is and errors.As.
func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}

// Resolver tries its sources in order and returns the first success.
type Resolver struct {
	sources []Source
}

// NewResolver creates a resolver over sources, tried in the given order.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Sources returns the names of the configured sources in resolution order.
func (r *Resolver) Sources() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// Resolve returns the content of filename from the first source that has it.
//
// Invalid names fail before any source is touched. A canceled context stops
// the walk; the context error is recorded as the final attempt.
func (r *Resolver) Resolve(ctx context.Context, filename string) (Resolved, error) {
	if err := ValidateName(filename); err != nil {
		return Resolved{}, err
	}

	logger := logging.WithFields(ctx, "filename", filename)
	exhausted := &ExhaustedError{Filename: filename}

	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			exhausted.Attempts = append(exhausted.Attempts, Attempt{Source: src.Name(), Err: err})
			break
		}

		content, err := src.Read(ctx, filename)
		if err == nil {
			logger.Debug("dataset resolved", "source", src.Name(), "bytes", len(content))
			return Resolved{Content: content, Source: src.Name()}, nil
		}

		logger.Debug("source miss", "source", src.Name(), "error", err)
		exhausted.Attempts = append(exhausted.Attempts, Attempt{Source: src.Name(), Err: err})
	}

	return Resolved{}, exhausted
}

// ValidateName checks that filename is a non-empty, slash-separated relative
// path that stays inside every source root.
func ValidateName(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.Contains(filename, `\`) || !fs.ValidPath(filename) || filename == "." {
		return fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	return nil
}

// ReadLimited reads all of r, failing with ErrTooLarge past max bytes.
// A non-positive max disables the limit.
func ReadLimited(r io.Reader, max int64) (string, error) {
	if max > 0 {
		r = io.LimitReader(r, max+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	if max > 0 && int64(len(data)) > max {
		return "", fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, max)
	}
	return string(data), nil
}
