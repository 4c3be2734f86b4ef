// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"testing"
)

func TestExtensionDataNested(t *testing.T) {
	r := NewAsciiReader(bytes.NewReader([]byte(
		"102\n{OUTER\n1\nfoo\n102\n{INNER\n40\n1.5\n102\n}\n102\n}\n0\nLINE\n")))
	it := newPairIterator(r)
	open, _, err := it.next()
	if err != nil {
		t.Fatalf("reading opening pair failed: %v", err)
	}
	ext, err := readExtensionData(it, open, maxExtensionDataDepth)
	if err != nil {
		t.Fatalf("readExtensionData failed: %v", err)
	}
	if ext.GroupName != "OUTER" {
		t.Errorf("GroupName = %q, want OUTER", ext.GroupName)
	}
	// The interior run is: (1, foo), the nested group's open/close fences
	// plus its own interior pair, in order.
	if len(ext.Pairs) != 4 {
		t.Fatalf("got %d interior pairs, want 4: %v", len(ext.Pairs), ext.Pairs)
	}
	if ext.Pairs[0].Code != 1 || ext.Pairs[0].Str != "foo" {
		t.Errorf("first pair = %v, want (1, foo)", ext.Pairs[0])
	}
	if ext.Pairs[1].Str != "{INNER" {
		t.Errorf("second pair = %v, want nested open", ext.Pairs[1])
	}

	// What remains in the stream is the LINE tag, untouched.
	next, ok, err := it.next()
	if err != nil || !ok {
		t.Fatalf("expected LINE tag after the group, got ok=%v err=%v", ok, err)
	}
	if next.Code != 0 || next.Str != "LINE" {
		t.Errorf("leftover pair = %v, want (0, LINE)", next)
	}
}

func TestExtensionDataTooDeep(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 17; i++ {
		buf.WriteString("102\n{G\n")
	}
	r := NewAsciiReader(&buf)
	it := newPairIterator(r)
	open, _, err := it.next()
	if err != nil {
		t.Fatalf("reading opening pair failed: %v", err)
	}
	_, err = readExtensionData(it, open, maxExtensionDataDepth)
	if err != ErrExtensionDataTooDeep {
		t.Fatalf("expected ErrExtensionDataTooDeep, got %v", err)
	}
}
