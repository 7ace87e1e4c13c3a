// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Codes are grouped by category:
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Not found: No configured location holds the dataset
//	         Action: Check the file name, or provision it under the data directory
//	SRC002 - Invalid name: The dataset name is not a relative file path
//	         Action: Use a name like "cities.csv" or "region/cities.csv"
//	SRC003 - Too large: The dataset exceeds the configured size limit
//	         Action: Raise SOURCE_MAX_BYTES or split the file
//	SRC004 - Not materialized: A bundled or remote asset could not be written locally
//	         Action: Check that ASSET_CACHE_DIR exists and is writable
//	SRC005 - Load failed: Every location failed for another reason
//	         Action: Check the server logs for each attempt
//
// # Remote Errors (NET001-NET099)
//
// Matched by message pattern, for failures of the remote asset store:
//
//	NET001 - Access denied (patterns: "accessdenied", "access denied", "forbidden")
//	NET002 - Unreachable (patterns: "connection refused", "no such host")
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Cancelled: The request was cancelled before the dataset loaded
//	REQ002 - Timeout: Loading took longer than allowed
//	REQ003 - Rate limited: Too many requests from one client (set by the HTTP layer)
//	REQ004 - Busy: Every load slot stayed occupied for the whole wait
//
// # Default Error (ERR000)
//
// Fallback when nothing else matches. Support staff should check the logs
// for the original technical error.

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/csvasset/internal/source"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgNotFound = UserMessage{
		Message: "Dataset not found",
		Action:  "Check the file name, or provision it under the data directory",
		Code:    "SRC001",
	}
	msgInvalidName = UserMessage{
		Message: "Invalid dataset name",
		Action:  `Use a relative name like "cities.csv" or "region/cities.csv"`,
		Code:    "SRC002",
	}
	msgTooLarge = UserMessage{
		Message: "Dataset exceeds the size limit",
		Action:  "Raise SOURCE_MAX_BYTES or split the file",
		Code:    "SRC003",
	}
	msgNotMaterialized = UserMessage{
		Message: "Bundled dataset could not be prepared for reading",
		Action:  "Check that ASSET_CACHE_DIR exists and is writable",
		Code:    "SRC004",
	}
	msgLoadFailed = UserMessage{
		Message: "Dataset could not be loaded",
		Action:  "Check the server logs for each source attempt",
		Code:    "SRC005",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "REQ001",
	}
	msgTimeout = UserMessage{
		Message: "Loading the dataset timed out",
		Action:  "Try again later or raise SERVER_REQUEST_TIMEOUT",
		Code:    "REQ002",
	}
	msgBusy = UserMessage{
		Message: "Server is busy loading other datasets",
		Action:  "Please try again in a few moments",
		Code:    "REQ004",
	}
)

// errorKinds maps sentinel errors to user messages. The first match wins.
// A plain miss is not listed: an exhausted chain reports the most specific
// tier failure, and ErrNotFound is only checked after the text patterns.
var errorKinds = []struct {
	target error
	msg    UserMessage
}{
	{source.ErrInvalidName, msgInvalidName},
	{context.DeadlineExceeded, msgTimeout},
	{context.Canceled, msgCancelled},
	{ErrBusy, msgBusy},
	{source.ErrTooLarge, msgTooLarge},
	{source.ErrNotMaterialized, msgNotMaterialized},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catches failures that surface only as text, mostly from the
// remote asset store. Matched case-insensitively with strings.Contains.
var errorPatterns = []errorPattern{
	{
		pattern: "accessdenied",
		msg: UserMessage{
			Message: "Access to the remote asset store was denied",
			Action:  "Check the credentials and bucket policy",
			Code:    "NET001",
		},
	},
	{
		pattern: "access denied",
		msg: UserMessage{
			Message: "Access to the remote asset store was denied",
			Action:  "Check the credentials and bucket policy",
			Code:    "NET001",
		},
	},
	{
		pattern: "forbidden",
		msg: UserMessage{
			Message: "Access to the remote asset store was denied",
			Action:  "Check the credentials and bucket policy",
			Code:    "NET001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Remote asset store is unreachable",
			Action:  "Please try again in a few moments",
			Code:    "NET002",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Remote asset store is unreachable",
			Action:  "Check the network and region configuration",
			Code:    "NET002",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Known sentinels are checked first with errors.Is, then the text patterns,
// then a plain miss, then a generic load failure for any *LoadError. Anything else maps to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}

	for _, text := range failureTexts(err) {
		for _, ep := range errorPatterns {
			if strings.Contains(text, ep.pattern) {
				return ep.msg
			}
		}
	}

	if errors.Is(err, source.ErrNotFound) {
		return msgNotFound
	}
	if errors.Is(err, ErrLoad) {
		return msgLoadFailed
	}

	return defaultMessage
}

// failureTexts returns the lowercased messages the text patterns are matched
// against. Plain misses are left out, and so is the *LoadError wrapper, so a
// filename or data path that happens to contain a pattern never matches.
func failureTexts(err error) []string {
	var exhausted *source.ExhaustedError
	if errors.As(err, &exhausted) {
		var texts []string
		for _, a := range exhausted.Attempts {
			if a.Err != nil && !errors.Is(a.Err, source.ErrNotFound) {
				texts = append(texts, strings.ToLower(a.Err.Error()))
			}
		}
		return texts
	}

	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		if loadErr.Err == nil {
			return nil
		}
		return failureTexts(loadErr.Err)
	}

	if errors.Is(err, source.ErrNotFound) {
		return nil
	}
	return []string{strings.ToLower(err.Error())}
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
