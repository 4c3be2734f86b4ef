// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func TestLayerRecordRoundTrip(t *testing.T) {
	l := &Layer{
		TableRecordData: TableRecordData{Name: "Dimensions", Handle: 0x30},
		Color:           ColorFromWire(5),
		Linetype:        "DASHED",
	}
	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := writeTableRecord(l, VersionR2018, aw); err != nil {
		t.Fatalf("writeTableRecord failed: %v", err)
	}

	it := newPairIterator(NewAsciiReader(strings.NewReader(buf.String() + "0\nENDTAB\n")))
	tag, _, err := it.next()
	if err != nil || tag.Str != "LAYER" {
		t.Fatalf("expected leading LAYER tag, got %v / %v", tag, err)
	}
	got := &Layer{}
	if err := readTableRecordBody(it, got); err != nil {
		t.Fatalf("readTableRecordBody failed: %v", err)
	}
	if got.Name != "Dimensions" || got.Handle != 0x30 {
		t.Errorf("got = %+v, unexpected common fields", got.TableRecordData)
	}
	if got.Linetype != "DASHED" {
		t.Errorf("Linetype = %q, want DASHED", got.Linetype)
	}
	if got.Color != l.Color {
		t.Errorf("Color = %v, want %v", got.Color, l.Color)
	}
}

func TestLayerOffEncodesNegativeColor(t *testing.T) {
	l := &Layer{TableRecordData: TableRecordData{Name: "Hidden"}, Off: true, Color: ColorFromWire(3)}
	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := l.WritePairs(VersionR2018, aw); err != nil {
		t.Fatalf("WritePairs failed: %v", err)
	}
	if !strings.Contains(buf.String(), "62\n-3\n") {
		t.Errorf("expected a negative color code for an off layer, got %q", buf.String())
	}
}

func TestDrawingTablesWiring(t *testing.T) {
	content := "0\nSECTION\n2\nHEADER\n9\n$ACADVER\n1\nAC1015\n0\nENDSEC\n" +
		"0\nSECTION\n2\nTABLES\n" +
		"0\nTABLE\n2\nLAYER\n5\n10\n70\n1\n" +
		"0\nLAYER\n2\n0\n70\n0\n62\n7\n6\nCONTINUOUS\n" +
		"0\nENDTAB\n" +
		"0\nENDSEC\n0\nEOF\n"
	d, err := Load(strings.NewReader(content), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tbl, ok := d.Tables["LAYER"]
	if !ok {
		t.Fatal("expected a LAYER table to be present")
	}
	if tbl.Handle != 0x10 {
		t.Errorf("table Handle = %x, want 10", tbl.Handle)
	}
	if len(tbl.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(tbl.Records))
	}
	if tbl.Records[0].Data().Name != "0" {
		t.Errorf("record name = %q, want 0", tbl.Records[0].Data().Name)
	}
}
