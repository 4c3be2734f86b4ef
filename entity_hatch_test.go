// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func TestHatchPolylineBoundaryPath(t *testing.T) {
	content := "0\nHATCH\n8\n0\n2\nANSI31\n70\n0\n75\n0\n76\n1\n52\n0.0\n41\n1.0\n91\n1\n" +
		"92\n2\n72\n0\n73\n1\n93\n2\n" +
		"10\n0.0\n20\n0.0\n10\n1.0\n20\n0.0\n" +
		"97\n0\n" +
		"0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	tag, _, err := it.next()
	if err != nil || tag.Str != "HATCH" {
		t.Fatalf("reading leading tag failed: %v / %v", tag, err)
	}
	h := &Hatch{}
	if err := h.ReadBody(it, nil); err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if len(h.BoundaryPaths) != 1 {
		t.Fatalf("got %d boundary paths, want 1", len(h.BoundaryPaths))
	}
	bp := h.BoundaryPaths[0]
	if !bp.IsPolyline || !bp.IsClosed {
		t.Errorf("bp = %+v, want polyline and closed", bp)
	}
	if len(bp.Edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(bp.Edges))
	}
	if bp.Edges[1].Point != [2]float64{1.0, 0.0} {
		t.Errorf("edge[1] = %v, want (1,0)", bp.Edges[1].Point)
	}
}

func TestHatchNonPolylineBoundarySkipped(t *testing.T) {
	content := "0\nHATCH\n8\n0\n2\nANSI31\n70\n1\n75\n0\n76\n1\n91\n1\n" +
		"92\n1\n93\n0\n" +
		"97\n0\n" +
		"0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	tag, _, err := it.next()
	if err != nil || tag.Str != "HATCH" {
		t.Fatalf("reading leading tag failed: %v / %v", tag, err)
	}
	h := &Hatch{}
	if err := h.ReadBody(it, nil); err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if len(h.BoundaryPaths) != 1 {
		t.Fatalf("got %d boundary paths, want 1", len(h.BoundaryPaths))
	}
	if h.BoundaryPaths[0].IsPolyline {
		t.Error("non-polyline boundary path should not be marked IsPolyline")
	}
}

func TestHatchBoundarySourceObjectResolves(t *testing.T) {
	d := NewDrawing()
	d.Header.Version = VersionR2000
	line := &Line{Start: [3]float64{0, 0, 0}, End: [3]float64{1, 1, 0}}
	hatch := &Hatch{
		PatternName: "ANSI31",
		BoundaryPaths: []*HatchBoundaryPath{
			{Flags: 0, SourceHandles: []Pointer{PointerTo(line)}},
		},
	}
	d.Entities = []Entity{line, hatch}

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	d2, err := Load(&buf, nil)
	if err != nil {
		t.Fatalf("reloading saved output failed: %v", err)
	}
	var h2 *Hatch
	for _, e := range d2.Entities {
		if hh, ok := e.(*Hatch); ok {
			h2 = hh
		}
	}
	if h2 == nil {
		t.Fatal("reloaded drawing has no HATCH entity")
	}
	if len(h2.BoundaryPaths) != 1 || len(h2.BoundaryPaths[0].SourceHandles) != 1 {
		t.Fatalf("boundary paths/source handles = %+v, want one of each", h2.BoundaryPaths)
	}
	src := h2.BoundaryPaths[0].SourceHandles[0]
	if _, ok := src.Resolved().(*Line); !ok {
		t.Errorf("source handle resolved to %T, want *Line", src.Resolved())
	}
}
