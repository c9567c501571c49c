package core

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newCleanReader decodes a tariff export to UTF-8. A leading byte order mark
// is dropped, and UTF-16 files saved by spreadsheets are recognized by theirs.
// Bytes that are not valid UTF-8 become U+FFFD.
func newCleanReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
