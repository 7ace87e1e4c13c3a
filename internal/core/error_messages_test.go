package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/csvasset/internal/source"
)

func exhausted(causes ...error) error {
	return exhaustedFor("a.csv", causes...)
}

func exhaustedFor(filename string, causes ...error) error {
	e := &source.ExhaustedError{Filename: filename}
	for i, c := range causes {
		e.Attempts = append(e.Attempts, source.Attempt{Source: fmt.Sprintf("s%d", i), Err: c})
	}
	return &LoadError{Filename: filename, Err: e}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "every source missed",
			err:         exhausted(source.ErrNotFound, source.ErrNotFound),
			wantCode:    "SRC001",
			wantMessage: "Dataset not found",
		},
		{
			name:        "invalid name",
			err:         &LoadError{Filename: "..", Err: fmt.Errorf("%w: %q", source.ErrInvalidName, "..")},
			wantCode:    "SRC002",
			wantMessage: "Invalid dataset name",
		},
		{
			name:        "too large wins over not found",
			err:         exhausted(source.ErrNotFound, source.ErrTooLarge),
			wantCode:    "SRC003",
			wantMessage: "Dataset exceeds the size limit",
		},
		{
			name:        "materialization failure wins over not found",
			err:         exhausted(source.ErrNotFound, source.ErrNotMaterialized),
			wantCode:    "SRC004",
			wantMessage: "Bundled dataset could not be prepared for reading",
		},
		{
			name:        "other load failure",
			err:         exhausted(errors.New("disk on fire")),
			wantCode:    "SRC005",
			wantMessage: "Dataset could not be loaded",
		},
		{
			name:        "remote access denied",
			err:         exhausted(source.ErrNotFound, errors.New("api error AccessDenied: Access Denied")),
			wantCode:    "NET001",
			wantMessage: "Access to the remote asset store was denied",
		},
		{
			name: "miss on a name containing a remote pattern",
			err: exhaustedFor("forbidden_zones.csv",
				fmt.Errorf("%w: /srv/data/forbidden_zones.csv", source.ErrNotFound),
				fmt.Errorf("%w: asset data/forbidden_zones.csv", source.ErrNotFound),
			),
			wantCode:    "SRC001",
			wantMessage: "Dataset not found",
		},
		{
			name: "miss under a data dir containing a remote pattern",
			err: exhaustedFor("a.csv",
				fmt.Errorf("%w: /srv/accessdenied/data/a.csv", source.ErrNotFound),
			),
			wantCode:    "SRC001",
			wantMessage: "Dataset not found",
		},
		{
			name: "remote failure still matched beside a miss",
			err: exhaustedFor("forbidden_zones.csv",
				fmt.Errorf("%w: asset data/forbidden_zones.csv", source.ErrNotFound),
				errors.New("get object: dial tcp: connection refused"),
			),
			wantCode:    "NET002",
			wantMessage: "Remote asset store is unreachable",
		},
		{
			name:        "remote unreachable",
			err:         errors.New("dial tcp: lookup bucket: no such host"),
			wantCode:    "NET002",
			wantMessage: "Remote asset store is unreachable",
		},
		{
			name:        "cancelled",
			err:         exhausted(context.Canceled),
			wantCode:    "REQ001",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "deadline",
			err:         exhausted(source.ErrNotFound, context.DeadlineExceeded),
			wantCode:    "REQ002",
			wantMessage: "Loading the dataset timed out",
		},
		{
			name:        "busy",
			err:         ErrBusy,
			wantCode:    "REQ004",
			wantMessage: "Server is busy loading other datasets",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("CONNECTION REFUSED"),
			wantCode:    "NET002",
			wantMessage: "Remote asset store is unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(exhausted(source.ErrNotFound))

	expected := "Dataset not found (Code: SRC001). Check the file name, or provision it under the data directory"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", exhausted(source.ErrNotFound), true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := exhausted(source.ErrNotFound)
		userErr := NewUserError(techErr)

		if userErr.Error() != "Dataset not found" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, techErr) {
			t.Error("Unwrap() should return original error")
		}
		if !errors.Is(userErr, ErrLoad) {
			t.Error("UserError should still match ErrLoad")
		}
	})
}
