// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func TestInsertAttribSeqend(t *testing.T) {
	content := "0\nINSERT\n8\n0\n2\nMyBlock\n10\n0.0\n20\n0.0\n30\n0.0\n66\n1\n" +
		"0\nATTRIB\n8\n0\n10\n1.0\n20\n1.0\n30\n0.0\n40\n2.5\n1\nhello\n2\nTAG1\n70\n0\n" +
		"0\nSEQEND\n8\n0\n" +
		"0\nLINE\n8\n0\n10\n0.0\n20\n0.0\n30\n0.0\n11\n1.0\n21\n1.0\n31\n0.0\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	tag, _, err := it.next()
	if err != nil || tag.Str != "INSERT" {
		t.Fatalf("reading leading tag failed: %v / %v", tag, err)
	}
	ins := &Insert{}
	d := NewDrawing()
	if err := ins.ReadBody(it, d); err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if ins.BlockName != "MyBlock" {
		t.Errorf("BlockName = %q, want MyBlock", ins.BlockName)
	}
	if !ins.AttributesFollow {
		t.Fatal("AttributesFollow should be true")
	}
	if len(ins.Attribs) != 1 {
		t.Fatalf("got %d attribs, want 1", len(ins.Attribs))
	}
	if ins.Attribs[0].Value != "hello" || ins.Attribs[0].Tag != "TAG1" {
		t.Errorf("attrib = %+v, unexpected value/tag", ins.Attribs[0])
	}

	next, ok, err := it.next()
	if err != nil || !ok || next.Str != "LINE" {
		t.Fatalf("expected LINE tag after SEQEND, got %v ok=%v err=%v", next, ok, err)
	}
}

func TestInsertWithoutAttributesOmitsSeqend(t *testing.T) {
	ins := &Insert{BlockName: "Simple", ScaleFactor: [3]float64{1, 1, 1}}
	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := ins.WriteBody(VersionR2018, aw); err != nil {
		t.Fatalf("WriteBody failed: %v", err)
	}
	if strings.Contains(buf.String(), "SEQEND") {
		t.Error("INSERT without attributes should not emit SEQEND")
	}
}
