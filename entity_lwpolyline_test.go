// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func TestLWPolylineVertexInterleaving(t *testing.T) {
	content := "0\nLWPOLYLINE\n8\n0\n70\n1\n90\n2\n" +
		"10\n0.0\n20\n0.0\n40\n0.1\n41\n0.2\n" +
		"10\n1.0\n20\n1.0\n42\n0.5\n" +
		"0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	tag, _, err := it.next()
	if err != nil || tag.Str != "LWPOLYLINE" {
		t.Fatalf("reading leading tag failed: %v / %v", tag, err)
	}
	p := &LWPolyline{}
	if err := p.ReadBody(it, nil); err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if len(p.Vertices) != 2 {
		t.Fatalf("got %d vertices, want 2", len(p.Vertices))
	}
	if p.Vertices[0].StartWidth != 0.1 || p.Vertices[0].EndWidth != 0.2 {
		t.Errorf("vertex[0] = %+v, unexpected widths", p.Vertices[0])
	}
	if p.Vertices[1].Bulge != 0.5 {
		t.Errorf("vertex[1] = %+v, want bulge 0.5", p.Vertices[1])
	}
}

func TestLWPolylineWriteBodyInterleavesPerVertex(t *testing.T) {
	p := &LWPolyline{
		Flags: 1,
		Vertices: []LWPolylineVertex{
			{X: 0, Y: 0, Bulge: 0.5},
			{X: 1, Y: 1},
		},
	}
	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := p.WriteBody(VersionR2018, aw); err != nil {
		t.Fatalf("WriteBody failed: %v", err)
	}
	// The bulge for vertex 0 must appear before the second vertex's
	// X coordinate, proving per-vertex interleaving rather than a
	// trailing run of all bulges.
	out := buf.String()
	bulgeIdx := strings.Index(out, "42\n")
	secondXIdx := strings.LastIndex(out, "10\n")
	if bulgeIdx < 0 || secondXIdx < 0 || bulgeIdx > secondXIdx {
		t.Errorf("expected interleaved output, got %q", out)
	}
}
