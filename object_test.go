// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func TestDictionaryEntryPairing(t *testing.T) {
	content := "0\nDICTIONARY\n5\n1A\n280\n1\n" +
		"3\nLayout1\n350\n2B\n" +
		"3\nLayout2\n350\n2C\n" +
		"0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	tag, _, err := it.next()
	if err != nil || tag.Str != "DICTIONARY" {
		t.Fatalf("reading leading tag failed: %v / %v", tag, err)
	}
	dict := &Dictionary{}
	if err := readObjectBody(it, dict, nil, maxExtensionDataDepth); err != nil {
		t.Fatalf("readObjectBody failed: %v", err)
	}
	if dict.Handle != 0x1A {
		t.Errorf("Handle = %x, want 1a", dict.Handle)
	}
	if !dict.HardOwned {
		t.Error("HardOwned should be true")
	}
	if len(dict.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(dict.Entries))
	}
	if dict.Entries[0].Name != "Layout1" || dict.Entries[0].Handle != 0x2B {
		t.Errorf("entry[0] = %+v, unexpected name/handle", dict.Entries[0])
	}
	if dict.Entries[1].Name != "Layout2" || dict.Entries[1].Handle != 0x2C {
		t.Errorf("entry[1] = %+v, unexpected name/handle", dict.Entries[1])
	}
}

func TestDictionaryWriteObjectRoundTrip(t *testing.T) {
	dict := &Dictionary{
		ObjectData: ObjectData{Handle: 0x5},
		HardOwned:  true,
		Entries:    []DictionaryEntry{{Name: "A", Handle: 0x10}},
	}
	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := writeObject(dict, VersionR2018, aw); err != nil {
		t.Fatalf("writeObject failed: %v", err)
	}

	it := newPairIterator(NewAsciiReader(strings.NewReader(buf.String() + "0\nENDSEC\n")))
	tag, _, err := it.next()
	if err != nil || tag.Str != "DICTIONARY" {
		t.Fatalf("expected leading DICTIONARY tag, got %v / %v", tag, err)
	}
	got := &Dictionary{}
	if err := readObjectBody(it, got, nil, maxExtensionDataDepth); err != nil {
		t.Fatalf("re-reading the written object failed: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].Name != "A" || got.Entries[0].Handle != 0x10 {
		t.Errorf("round-tripped entries = %+v, want one entry (A, 0x10)", got.Entries)
	}
}

func TestUnknownObjectPreservesRawPairs(t *testing.T) {
	content := "0\nACAD_PROXY_OBJECT\n5\n99\n1\nopaque payload\n0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	tag, _, err := it.next()
	if err != nil {
		t.Fatalf("reading leading tag failed: %v", err)
	}
	obj := NewUnknownObject(tag.Str)
	if err := readObjectBody(it, obj, nil, maxExtensionDataDepth); err != nil {
		t.Fatalf("readObjectBody failed: %v", err)
	}
	if len(obj.RawPairs) != 1 || obj.RawPairs[0].Str != "opaque payload" {
		t.Errorf("RawPairs = %+v, want the opaque payload preserved verbatim", obj.RawPairs)
	}
}
