package core

// error_messages.go maps technical errors to user-friendly messages with
// codes for support reference. When users encounter errors, they can quote
// the code to support staff for faster diagnosis.
//
// # Declaration and Party Errors (DEC, PTY, MB)
//
//	DEC001 - Declaration not found
//	         Patterns: "declaration not found"
//	MB001  - No master bill has been generated yet
//	         Patterns: "master bill not found"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Identifier list missing or not an array (bulk delete)
//	         Patterns: "invalid request: ids"
//	VAL002 - Item list missing or not an array (item replace)
//	         Patterns: "invalid request: items"
//	VAL003 - Declaration identifier already in use
//	         Patterns: "already exists"
//	VAL004 - Request body could not be decoded
//	         Patterns: "invalid request body"
//	VAL005 - Tariff file is not a valid CSV
//	         Patterns: "invalid csv"
//	VAL000 - Any other validation failure
//	         Patterns: "invalid request"
//
// # Store Errors (STO, DB)
//
//	STO001 - Stored data could not be read
//	         Patterns: "store read failed"
//	STO002 - Changes could not be saved
//	         Patterns: "store write failed"
//	DB004  - Connection refused
//	DB005  - Connection reset
//	DB006  - Timeout
//
// # Request Errors (DOC, REQ, RATE)
//
//	DOC001 - Too many documents being generated
//	REQ001 - Request cancelled ("context canceled")
//	REQ002 - Request timed out ("context deadline exceeded")
//	RATE001 - Rate limited
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// Patterns are matched case-insensitively using strings.Contains. The first
// matching pattern wins, so more specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Not found
	// =========================================================================
	{
		pattern: "declaration not found",
		msg: UserMessage{
			Message: "Declaration not found",
			Action:  "Refresh the declaration list; it may have been deleted",
			Code:    "DEC001",
		},
	},
	{
		pattern: "master bill not found",
		msg: UserMessage{
			Message: "No master bill has been generated yet",
			Action:  "Generate a document with a master bill first",
			Code:    "MB001",
		},
	},

	// =========================================================================
	// Validation
	// =========================================================================
	{
		pattern: "invalid request: ids",
		msg: UserMessage{
			Message: "A list of declaration identifiers is required",
			Action:  `Send {"ids": [...]} with at least an empty array`,
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid request: items",
		msg: UserMessage{
			Message: "A list of items is required",
			Action:  `Send {"items": [...]} with the complete item list`,
			Code:    "VAL002",
		},
	},
	{
		pattern: "already exists",
		msg: UserMessage{
			Message: "A declaration with this identifier already exists",
			Action:  "Update the existing declaration instead",
			Code:    "VAL003",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request body could not be read",
			Action:  "Send a valid JSON document",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "Tariff file is not a valid CSV",
			Action:  "Ensure the file is comma-separated with a header row",
			Code:    "VAL005",
		},
	},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request is invalid",
			Action:  "Check the request and try again",
			Code:    "VAL000",
		},
	},

	// =========================================================================
	// Store
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the data store",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Data store connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "store read failed",
		msg: UserMessage{
			Message: "Stored data could not be read",
			Action:  "Please try again or contact support",
			Code:    "STO001",
		},
	},
	{
		pattern: "store write failed",
		msg: UserMessage{
			Message: "Changes could not be saved",
			Action:  "Please try again; nothing was saved",
			Code:    "STO002",
		},
	},

	// =========================================================================
	// Request handling
	// =========================================================================
	{
		pattern: "too many document requests",
		msg: UserMessage{
			Message: "The system is busy generating other documents",
			Action:  "Please wait a moment and try again",
			Code:    "DOC001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, the ERR000 fallback is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
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

// IsUserFacing reports whether err matches a known pattern rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
