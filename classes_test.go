// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadWriteClassesRoundTrip(t *testing.T) {
	content := "0\nCLASS\n1\nACDBDICTIONARYWDFLT\n2\nAcDbDictionaryWithDefault\n3\nObjectDBX Classes\n" +
		"90\n0\n91\n1\n280\n0\n281\n0\n0\nENDSEC\n"
	it := newPairIterator(NewAsciiReader(strings.NewReader(content)))
	classes, err := readClasses(it)
	if err != nil {
		t.Fatalf("readClasses failed: %v", err)
	}
	if len(classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(classes))
	}
	if classes[0].RecordName != "ACDBDICTIONARYWDFLT" {
		t.Errorf("RecordName = %q, want ACDBDICTIONARYWDFLT", classes[0].RecordName)
	}

	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := writeClasses(classes, aw); err != nil {
		t.Fatalf("writeClasses failed: %v", err)
	}
	it2 := newPairIterator(NewAsciiReader(strings.NewReader(buf.String() + "0\nENDSEC\n")))
	got, err := readClasses(it2)
	if err != nil {
		t.Fatalf("re-reading the written classes failed: %v", err)
	}
	if len(got) != 1 || got[0].CppClassName != "AcDbDictionaryWithDefault" {
		t.Errorf("got = %+v, unexpected round trip", got)
	}
}
