package customsdoc

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/JonMunkholm/customs/internal/core"
)

func TestMarshal(t *testing.T) {
	root := Element("Root",
		Leaf("Name", "Fish & Chips <Ltd>"),
		Element("Empty"),
	).WithAttr("version", "1")

	out, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(out)

	if !strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("Marshal() missing XML declaration: %q", s[:40])
	}
	if !strings.Contains(s, `<Root version="1">`) {
		t.Errorf("Marshal() missing root attribute:\n%s", s)
	}
	if !strings.Contains(s, "<Name>Fish &amp; Chips &lt;Ltd&gt;</Name>") {
		t.Errorf("Marshal() did not escape text:\n%s", s)
	}

	var parsed struct {
		XMLName xml.Name `xml:"Root"`
		Name    string   `xml:"Name"`
	}
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("output is not well-formed: %v", err)
	}
	if parsed.Name != "Fish & Chips <Ltd>" {
		t.Errorf("round trip Name = %q", parsed.Name)
	}
}

func TestMarshalRejectsTextRoot(t *testing.T) {
	if _, err := Marshal(TextNode("x")); err == nil {
		t.Error("Marshal(text) should fail")
	}
	if _, err := Marshal(nil); err == nil {
		t.Error("Marshal(nil) should fail")
	}
}

func TestRenderDeterministic(t *testing.T) {
	job := testJob(testMasterBill(), []core.Declaration{testDeclaration()})

	first, err := Render(job)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := Render(job)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Render() output differs between runs")
	}
	if !bytes.Contains(first, []byte("<"+RootElement+` version="3">`)) {
		t.Errorf("Render() missing root element")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		bill   string
		want   string
	}{
		{name: "plain", prefix: "customs", bill: "MBL-77", want: "customs-MBL-77-20250314.xml"},
		{name: "unsafe characters dropped", prefix: "cd", bill: "MBL/77 x", want: "cd-MBL77x-20250314.xml"},
		{name: "missing bill", prefix: "cd", bill: "", want: "cd-unnumbered-20250314.xml"},
		{name: "default prefix", prefix: "", bill: "A1", want: "customs-A1-20250314.xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mb := testMasterBill()
			mb.Shipment.BillNumber = tt.bill
			if got := Filename(tt.prefix, mb); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}
