package core

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Field is a scalar taken from an inbound payload.
//
// Clients send the same attribute as a JSON string, a number, a boolean or
// not at all. Field keeps the raw text of whatever scalar arrived; Valid
// reports whether a non-null value was present. Objects and arrays in a
// scalar position are treated as absent.
type Field struct {
	String string
	Valid  bool
}

// Text returns a valid Field holding s.
func Text(s string) Field {
	return Field{String: s, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = Field{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field{String: s, Valid: true}
	case '{', '[':
		*f = Field{}
	default:
		*f = Field{String: string(b), Valid: true}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.String)
}

// Value returns the trimmed text, or "" when the field is absent.
func (f Field) Value() string {
	if !f.Valid {
		return ""
	}
	return strings.TrimSpace(f.String)
}

// Present reports whether the field carries non-blank text.
func (f Field) Present() bool {
	return f.Value() != ""
}

// Amount parses the field as a monetary amount. Absent or malformed values
// are zero.
func (f Field) Amount() decimal.Decimal {
	return ParseAmount(f.Value())
}
