// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"testing"
)

func TestReadHeaderBasic(t *testing.T) {
	content := "" +
		"9\n$ACADVER\n1\nAC1015\n" +
		"9\n$INSUNITS\n70\n4\n" +
		"9\n$CLAYER\n8\nMyLayer\n" +
		"9\n$UNKNOWNFIELD\n1\nwhatever\n" +
		"0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(bytes.NewReader([]byte(content))))
	var warnings []string
	h, err := readHeader(it, func(msg string) { warnings = append(warnings, msg) })
	if err != nil {
		t.Fatalf("readHeader failed: %v", err)
	}
	if h.Version != VersionR2000 {
		t.Errorf("Version = %v, want R2000", h.Version)
	}
	if h.InsUnits != UnitsMillimeters {
		t.Errorf("InsUnits = %v, want Millimeters", h.InsUnits)
	}
	if h.CLayer != "MyLayer" {
		t.Errorf("CLayer = %q, want MyLayer", h.CLayer)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning for the unknown field, got %v", warnings)
	}
}

func TestWriteHeaderRoundTrip(t *testing.T) {
	h := NewHeader()
	h.Version = VersionR2018
	h.CLayer = "0"
	h.HandleSeed = 0x100

	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, h.Version)
	if err := writeHeader(h, h.Version, aw); err != nil {
		t.Fatalf("writeHeader failed: %v", err)
	}
	buf.WriteString("0\nENDSEC\n")

	it := newPairIterator(NewAsciiReader(bytes.NewReader(buf.Bytes())))
	got, err := readHeader(it, nil)
	if err != nil {
		t.Fatalf("readHeader on the written output failed: %v", err)
	}
	if got.Version != h.Version {
		t.Errorf("round-tripped Version = %v, want %v", got.Version, h.Version)
	}
	if got.HandleSeed != h.HandleSeed {
		t.Errorf("round-tripped HandleSeed = %v, want %v", got.HandleSeed, h.HandleSeed)
	}
}

func TestWriteHeaderPreR13OmitsHandseed(t *testing.T) {
	h := NewHeader()
	h.Version = VersionR12
	h.HandleSeed = 0x100

	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, h.Version)
	if err := writeHeader(h, h.Version, aw); err != nil {
		t.Fatalf("writeHeader failed: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("$HANDSEED")) {
		t.Error("pre-R13 header should not emit $HANDSEED")
	}
}
