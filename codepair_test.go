// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "testing"

func TestValueKindForCode(t *testing.T) {
	tests := []struct {
		code int
		want ValueKind
	}{
		{0, KindString},
		{10, KindDouble},
		{62, KindShort},
		{90, KindInt},
		{105, KindHandle},
		{160, KindLong},
		{290, KindBool},
		{310, KindBinary},
		{330, KindHandle},
		{420, KindInt},
		{1000, KindString},
		{1004, KindBinary},
		{1005, KindHandle},
		{1071, KindInt},
		{9999, KindString},
	}
	for _, tt := range tests {
		if got := ValueKindForCode(tt.code); got != tt.want {
			t.Errorf("ValueKindForCode(%d) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestCodePairAsHandle(t *testing.T) {
	hp := HandlePair(330, Handle(0x1A2B))
	h, err := hp.AsHandle()
	if err != nil {
		t.Fatalf("AsHandle() on handle pair failed: %v", err)
	}
	if h != 0x1A2B {
		t.Errorf("AsHandle() = %x, want 1a2b", h)
	}

	sp := StringPair(330, "1a2b")
	h, err = sp.AsHandle()
	if err != nil {
		t.Fatalf("AsHandle() on string-form handle pair failed: %v", err)
	}
	if h != 0x1A2B {
		t.Errorf("AsHandle() on string form = %x, want 1a2b", h)
	}

	dp := DoublePair(40, 1.0)
	if _, err := dp.AsHandle(); err == nil {
		t.Error("AsHandle() on a double pair should fail")
	}
}

func TestCodePairAsDoubleWrongType(t *testing.T) {
	sp := StringPair(1, "hello")
	if _, err := sp.AsDouble(); err == nil {
		t.Error("AsDouble() on a string pair should fail")
	}
}
