// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func TestMTextContinuationChunks(t *testing.T) {
	content := "0\nMTEXT\n8\n0\n10\n0.0\n20\n0.0\n30\n0.0\n40\n1.0\n" +
		"3\nfirst part \n3\nsecond part \n1\nthird part\n" +
		"0\nLINE\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	tag, _, err := it.next()
	if err != nil || tag.Str != "MTEXT" {
		t.Fatalf("reading leading tag failed: %v / %v", tag, err)
	}
	m := &MText{}
	if err := m.ReadBody(it, nil); err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	want := "first part second part third part"
	if m.Text != want {
		t.Errorf("Text = %q, want %q", m.Text, want)
	}
	next, ok, err := it.next()
	if err != nil || !ok || next.Str != "LINE" {
		t.Fatalf("expected LINE tag after MTEXT body, got %v ok=%v err=%v", next, ok, err)
	}
}

func TestMTextWriteBodySplitsLongText(t *testing.T) {
	m := &MText{Text: strings.Repeat("x", 300)}
	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := m.WriteBody(VersionR2018, aw); err != nil {
		t.Fatalf("WriteBody failed: %v", err)
	}
	if !strings.Contains(buf.String(), "3\n"+strings.Repeat("x", 250)) {
		t.Error("expected a 250-byte code-3 continuation chunk")
	}
	if !strings.Contains(buf.String(), "1\n"+strings.Repeat("x", 50)) {
		t.Error("expected the remaining 50 bytes as the closing code-1 chunk")
	}
}
