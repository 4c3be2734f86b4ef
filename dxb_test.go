// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"testing"
)

func TestDXBRoundTrip(t *testing.T) {
	d := NewDrawing()
	d.Entities = append(d.Entities,
		&Line{Start: [3]float64{1, 2, 0}, End: [3]float64{4, 5, 0}},
		&Point{Location: [3]float64{7, 8, 9}},
		&Circle{Center: [3]float64{0, 0, 0}, Radius: 2.5},
		&Arc{Circle: Circle{Center: [3]float64{1, 1, 0}, Radius: 3}, StartAngle: 0, EndAngle: 90},
		&Text{InsertionPoint: [3]float64{0, 0, 0}, Height: 1.5, Value: "hello"},
	)

	var buf bytes.Buffer
	if err := d.SaveDXB(&buf); err != nil {
		t.Fatalf("SaveDXB failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), dxbSentinel) {
		t.Fatalf("SaveDXB output does not start with DXB sentinel")
	}

	d2, err := LoadDXB(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		t.Fatalf("LoadDXB failed: %v", err)
	}
	if len(d2.Entities) != len(d.Entities) {
		t.Fatalf("got %d entities, want %d", len(d2.Entities), len(d.Entities))
	}

	line, ok := d2.Entities[0].(*Line)
	if !ok || line.Start != [3]float64{1, 2, 0} || line.End != [3]float64{4, 5, 0} {
		t.Errorf("Line round-trip mismatch: %+v", d2.Entities[0])
	}
	pt, ok := d2.Entities[1].(*Point)
	if !ok || pt.Location != [3]float64{7, 8, 9} {
		t.Errorf("Point round-trip mismatch: %+v", d2.Entities[1])
	}
	circ, ok := d2.Entities[2].(*Circle)
	if !ok || circ.Radius != 2.5 {
		t.Errorf("Circle round-trip mismatch: %+v", d2.Entities[2])
	}
	arc, ok := d2.Entities[3].(*Arc)
	if !ok || arc.StartAngle != 0 || arc.EndAngle != 90 {
		t.Errorf("Arc round-trip mismatch: %+v", d2.Entities[3])
	}
	text, ok := d2.Entities[4].(*Text)
	if !ok || text.Value != "hello" || text.Height != 1.5 {
		t.Errorf("Text round-trip mismatch: %+v", d2.Entities[4])
	}
}

func TestLoadDXBRejectsMissingSentinel(t *testing.T) {
	_, err := LoadDXB(bytes.NewReader([]byte("not a dxb stream")), nil)
	if err == nil {
		t.Fatal("expected error for missing DXB sentinel")
	}
}

func TestSaveDXBSkipsUnsupportedEntities(t *testing.T) {
	d := NewDrawing()
	d.Entities = append(d.Entities, &Ellipse{Center: [3]float64{1, 1, 0}})

	var buf bytes.Buffer
	if err := d.SaveDXB(&buf); err != nil {
		t.Fatalf("SaveDXB failed: %v", err)
	}
	d2, err := LoadDXB(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		t.Fatalf("LoadDXB failed: %v", err)
	}
	if len(d2.Entities) != 0 {
		t.Fatalf("got %d entities, want 0 (ELLIPSE is outside DXB's variant table)", len(d2.Entities))
	}
}
