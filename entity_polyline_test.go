// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func TestPolylineVertexSeqend(t *testing.T) {
	content := "0\nPOLYLINE\n8\n0\n70\n0\n" +
		"0\nVERTEX\n8\n0\n10\n1.0\n20\n1.0\n30\n0.0\n" +
		"0\nVERTEX\n8\n0\n10\n2.0\n20\n2.0\n30\n0.0\n" +
		"0\nSEQEND\n8\n0\n" +
		"0\nLINE\n8\n0\n10\n0.0\n20\n0.0\n30\n0.0\n11\n1.0\n21\n1.0\n31\n0.0\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	tag, _, err := it.next()
	if err != nil || tag.Str != "POLYLINE" {
		t.Fatalf("reading leading tag failed: %v / %v", tag, err)
	}
	p := &Polyline{}
	d := NewDrawing()
	if err := p.ReadBody(it, d); err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if len(p.Vertices) != 2 {
		t.Fatalf("got %d vertices, want 2", len(p.Vertices))
	}
	if p.Vertices[0].Location != [3]float64{1.0, 1.0, 0.0} {
		t.Errorf("vertex[0] = %v, want (1,1,0)", p.Vertices[0].Location)
	}
	if p.Vertices[1].Location != [3]float64{2.0, 2.0, 0.0} {
		t.Errorf("vertex[1] = %v, want (2,2,0)", p.Vertices[1].Location)
	}

	next, ok, err := it.next()
	if err != nil || !ok || next.Str != "LINE" {
		t.Fatalf("expected LINE tag after SEQEND, got %v ok=%v err=%v", next, ok, err)
	}
}

func TestPolylineWriteBodyEmitsSeqend(t *testing.T) {
	p := &Polyline{Flags: 1}
	p.Vertices = []*Vertex{
		{Location: [3]float64{0, 0, 0}},
		{Location: [3]float64{1, 1, 0}},
	}
	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := p.WriteBody(VersionR2018, aw); err != nil {
		t.Fatalf("WriteBody failed: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "VERTEX") != 2 {
		t.Errorf("expected 2 VERTEX tags, got output: %q", out)
	}
	if !strings.Contains(out, "SEQEND") {
		t.Error("WriteBody must terminate with SEQEND")
	}
}
