package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

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
			name:        "declaration not found maps correctly",
			err:         &NotFoundError{Kind: "declaration", ID: "abc"},
			wantCode:    "DEC001",
			wantMessage: "Declaration not found",
		},
		{
			name:        "missing master bill maps correctly",
			err:         &NotFoundError{Kind: "master bill"},
			wantCode:    "MB001",
			wantMessage: "No master bill has been generated yet",
		},
		{
			name:        "missing ids maps correctly",
			err:         &ValidationError{Field: "ids", Reason: "identifier list is required"},
			wantCode:    "VAL001",
			wantMessage: "A list of declaration identifiers is required",
		},
		{
			name:        "missing items maps correctly",
			err:         &ValidationError{Field: "items", Reason: "item list is required"},
			wantCode:    "VAL002",
			wantMessage: "A list of items is required",
		},
		{
			name:        "duplicate declaration id maps before generic validation",
			err:         &ValidationError{Field: "id", Reason: "declaration already exists"},
			wantCode:    "VAL003",
			wantMessage: "A declaration with this identifier already exists",
		},
		{
			name:        "bad csv maps correctly",
			err:         &ValidationError{Field: "file", Reason: "invalid csv: missing Code column"},
			wantCode:    "VAL005",
			wantMessage: "Tariff file is not a valid CSV",
		},
		{
			name:        "other validation maps to VAL000",
			err:         &ValidationError{Field: "mode", Reason: "unsupported"},
			wantCode:    "VAL000",
			wantMessage: "The request is invalid",
		},
		{
			name:        "connection refused wins over store wrapper",
			err:         fmt.Errorf("%w: declarations: %w", ErrStoreRead, errors.New("dial tcp: connection refused")),
			wantCode:    "DB004",
			wantMessage: "Unable to connect to the data store",
		},
		{
			name:        "store read failure maps correctly",
			err:         fmt.Errorf("%w: declarations: %w", ErrStoreRead, errors.New("disk gone")),
			wantCode:    "STO001",
			wantMessage: "Stored data could not be read",
		},
		{
			name:        "store write failure maps correctly",
			err:         fmt.Errorf("%w: importers: %w", ErrStoreWrite, errors.New("disk full")),
			wantCode:    "STO002",
			wantMessage: "Changes could not be saved",
		},
		{
			name:        "limiter saturation maps correctly",
			err:         ErrTooManyDocuments,
			wantCode:    "DOC001",
			wantMessage: "The system is busy generating other documents",
		},
		{
			name:        "context canceled maps correctly",
			err:         context.Canceled,
			wantCode:    "REQ001",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("DECLARATION NOT FOUND"),
			wantCode:    "DEC001",
			wantMessage: "Declaration not found",
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
	err := &NotFoundError{Kind: "declaration", ID: "abc"}
	result := FormatUserError(err)

	expected := "Declaration not found (Code: DEC001). Refresh the declaration list; it may have been deleted"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  &ValidationError{Field: "ids", Reason: "identifier list is required"},
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	if !errors.Is(&NotFoundError{Kind: "declaration", ID: "x"}, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if !errors.Is(&ValidationError{Field: "ids"}, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
	wrapped := fmt.Errorf("%w: declarations: %w", ErrStoreWrite, errors.New("boom"))
	if !errors.Is(wrapped, ErrStoreWrite) {
		t.Error("wrapped store error should match ErrStoreWrite")
	}
	if errors.Is(wrapped, ErrNotFound) {
		t.Error("store error should not match ErrNotFound")
	}
}
