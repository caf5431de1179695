package brep

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/piwi3910/panelcut/internal/geom"
)

func sampleDocument() *Document {
	return &Document{
		Wires: []Wire{
			{Reversed: false, Points: geom.Rect(0, 0, 100, 50)},
			{Reversed: true, Points: geom.Rect(10, 10, 20, 20).Reverse()},
		},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	doc := sampleDocument()

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(got.Wires) != len(doc.Wires) {
		t.Fatalf("expected %d wires, got %d", len(doc.Wires), len(got.Wires))
	}
	for i, w := range got.Wires {
		if w.Reversed != doc.Wires[i].Reversed {
			t.Errorf("wire %d: reversed flag mismatch", i)
		}
		if len(w.Points) != len(doc.Wires[i].Points) {
			t.Fatalf("wire %d: expected %d points, got %d", i, len(doc.Wires[i].Points), len(w.Points))
		}
		for j, p := range w.Points {
			if p != doc.Wires[i].Points[j] {
				t.Errorf("wire %d point %d: %v != %v", i, j, p, doc.Wires[i].Points[j])
			}
		}
	}
}

func TestEncode_ByteStable(t *testing.T) {
	doc := sampleDocument()

	var a, b bytes.Buffer
	if err := Encode(&a, doc); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := Encode(&b, doc); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("encoding the same document twice produced different bytes")
	}
}

func TestDecode_RejectsBadMagic(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("NOPE\x00\x01"))); err == nil {
		t.Error("expected error for bad magic")
	}
}

func TestDecode_RejectsTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleDocument()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data := buf.Bytes()
	if _, err := Decode(bytes.NewReader(data[:len(data)-8])); err == nil {
		t.Error("expected error for truncated document")
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.pbrep")
	doc := sampleDocument()

	if err := WriteFile(path, doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Wires) != 2 {
		t.Fatalf("expected 2 wires, got %d", len(got.Wires))
	}
	if !got.Wires[1].Reversed {
		t.Error("second wire should keep its reversed flag")
	}
}
