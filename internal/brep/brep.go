// Package brep implements the binary planar boundary-representation format
// used to store profile shapes and built panels. The format is fixed-layout
// and byte-stable: encoding the same document twice yields identical bytes,
// which is what the upstream canonicalization contract requires.
//
// Layout (little endian):
//
//	magic   [4]byte "PBRP"
//	version uint16
//	_       uint16 (reserved, zero)
//	wires   uint32
//	per wire:
//	  orientation uint8  (0 = forward/outer, 1 = reversed/hole)
//	  points      uint32
//	  per point: X float64, Y float64
package brep

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/panelcut/internal/geom"
)

// Version is the current format version.
const Version uint16 = 1

var magic = [4]byte{'P', 'B', 'R', 'P'}

const (
	// OrientForward marks an outer boundary wire.
	OrientForward uint8 = 0
	// OrientReversed marks a hole wire.
	OrientReversed uint8 = 1

	maxWires  = 1 << 16
	maxPoints = 1 << 24
)

// Wire is one closed boundary loop with its stored orientation flag.
type Wire struct {
	Reversed bool
	Points   geom.Outline
}

// Document is the decoded content of a .pbrep file. By convention the first
// forward wire is the outer boundary and reversed wires are holes.
type Document struct {
	Wires []Wire
}

// Encode writes the document to w.
func Encode(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, Version); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(doc.Wires))); err != nil {
		return err
	}
	for _, wire := range doc.Wires {
		orient := OrientForward
		if wire.Reversed {
			orient = OrientReversed
		}
		if err := binary.Write(bw, binary.LittleEndian, orient); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(wire.Points))); err != nil {
			return err
		}
		for _, p := range wire.Points {
			if err := binary.Write(bw, binary.LittleEndian, p.X); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, p.Y); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Decode reads a document from r.
func Decode(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)

	var m [4]byte
	if _, err := io.ReadFull(br, m[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if m != magic {
		return nil, fmt.Errorf("not a PBRP file (magic %q)", m[:])
	}

	var version, reserved uint16
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("unsupported PBRP version %d", version)
	}
	if err := binary.Read(br, binary.LittleEndian, &reserved); err != nil {
		return nil, err
	}

	var wireCount uint32
	if err := binary.Read(br, binary.LittleEndian, &wireCount); err != nil {
		return nil, err
	}
	if wireCount > maxWires {
		return nil, fmt.Errorf("wire count %d exceeds limit", wireCount)
	}

	doc := &Document{}
	for i := uint32(0); i < wireCount; i++ {
		var orient uint8
		if err := binary.Read(br, binary.LittleEndian, &orient); err != nil {
			return nil, fmt.Errorf("wire %d: %w", i, err)
		}
		var pointCount uint32
		if err := binary.Read(br, binary.LittleEndian, &pointCount); err != nil {
			return nil, fmt.Errorf("wire %d: %w", i, err)
		}
		if pointCount > maxPoints {
			return nil, fmt.Errorf("wire %d: point count %d exceeds limit", i, pointCount)
		}
		pts := make(geom.Outline, pointCount)
		for j := range pts {
			if err := binary.Read(br, binary.LittleEndian, &pts[j].X); err != nil {
				return nil, fmt.Errorf("wire %d point %d: %w", i, j, err)
			}
			if err := binary.Read(br, binary.LittleEndian, &pts[j].Y); err != nil {
				return nil, fmt.Errorf("wire %d point %d: %w", i, j, err)
			}
		}
		doc.Wires = append(doc.Wires, Wire{Reversed: orient == OrientReversed, Points: pts})
	}
	return doc, nil
}

// WriteFile encodes the document to a file.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile decodes a document from a file.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
