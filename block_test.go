// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadBlockWithEntity(t *testing.T) {
	content := "8\n0\n2\nMyBlock\n70\n0\n10\n0.0\n20\n0.0\n30\n0.0\n3\nMyBlock\n" +
		"0\nLINE\n8\n0\n10\n1.0\n20\n1.0\n30\n0.0\n11\n2.0\n21\n2.0\n31\n0.0\n" +
		"0\nENDBLK\n" +
		"0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	d := NewDrawing()
	b, err := readBlock(it, d, defaultOptions(nil))
	if err != nil {
		t.Fatalf("readBlock failed: %v", err)
	}
	if b.Name != "MyBlock" {
		t.Errorf("Name = %q, want MyBlock", b.Name)
	}
	if len(b.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(b.Entities))
	}
	if _, ok := b.Entities[0].(*Line); !ok {
		t.Errorf("entity is %T, want *Line", b.Entities[0])
	}
}

func TestWriteBlockRoundTrip(t *testing.T) {
	b := &Block{
		Name:   "Owned",
		Handle: 0x20,
		Owner:  NewPointer(0x10),
		Entities: []Entity{
			&Line{Start: [3]float64{0, 0, 0}, End: [3]float64{1, 1, 0}},
		},
	}
	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := writeBlock(b, VersionR2018, aw); err != nil {
		t.Fatalf("writeBlock failed: %v", err)
	}
	content := buf.String() + "0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))

	// Discard the leading (0, "BLOCK") tag readBlock expects consumed.
	tag, _, err := it.next()
	if err != nil || tag.Str != "BLOCK" {
		t.Fatalf("expected leading BLOCK tag, got %v / %v", tag, err)
	}
	d := NewDrawing()
	got, err := readBlock(it, d, defaultOptions(nil))
	if err != nil {
		t.Fatalf("re-reading the written block failed: %v", err)
	}
	if got.Name != "Owned" || got.Handle != 0x20 {
		t.Errorf("got = %+v, unexpected header fields", got)
	}
	if len(got.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(got.Entities))
	}
}
