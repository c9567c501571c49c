package customsdoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/JonMunkholm/customs/internal/core"
)

// Marshal serializes a tree to an indented XML document with a version 1.0
// UTF-8 declaration.
func Marshal(root *Node) ([]byte, error) {
	if root == nil || root.Kind != KindElement {
		return nil, fmt.Errorf("customsdoc: root must be an element")
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := encodeNode(enc, root); err != nil {
		return nil, fmt.Errorf("customsdoc: encode %s: %w", root.Name, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("customsdoc: flush: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeNode(enc *xml.Encoder, n *Node) error {
	if n.Kind == KindText {
		return enc.EncodeToken(xml.CharData(n.Text))
	}

	start := xml.StartElement{Name: xml.Name{Local: n.Name}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Render assembles and serializes the document for job.
func Render(job *core.DocumentJob) ([]byte, error) {
	return Marshal(Assemble(job.MasterBill, job.Declarations, job))
}

// Filename returns the attachment name for a generated document:
// <prefix>-<master bill number>-<yyyymmdd>.xml. Characters that are unsafe
// in a filename are dropped from the bill number.
func Filename(prefix string, mb core.MasterBill) string {
	if prefix == "" {
		prefix = "customs"
	}

	bill := sanitize(mb.Shipment.BillNumber)
	if bill == "" {
		bill = "unnumbered"
	}

	date := mb.UpdatedAt.UTC().Format("20060102")
	return fmt.Sprintf("%s-%s-%s.xml", prefix, bill, date)
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
