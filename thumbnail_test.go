// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

func minimalBMP(width, height int32) []byte {
	buf := make([]byte, 14+40)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:6], uint32(len(buf)))
	binary.LittleEndian.PutUint32(buf[10:14], 14+40)
	binary.LittleEndian.PutUint32(buf[14:18], 40)
	binary.LittleEndian.PutUint32(buf[18:22], uint32(width))
	binary.LittleEndian.PutUint32(buf[22:26], uint32(height))
	return buf
}

func TestValidateBMPAcceptsWellFormed(t *testing.T) {
	w, h, ok := validateBMP(minimalBMP(64, 64))
	if !ok || w != 64 || h != 64 {
		t.Errorf("validateBMP = (%d, %d, %v), want (64, 64, true)", w, h, ok)
	}
}

func TestValidateBMPRejectsCorrupt(t *testing.T) {
	if _, _, ok := validateBMP([]byte("not a bitmap")); ok {
		t.Error("validateBMP should reject a non-BMP buffer")
	}
	truncated := minimalBMP(64, 64)[:20]
	if _, _, ok := validateBMP(truncated); ok {
		t.Error("validateBMP should reject a truncated BMP")
	}
}

func TestThumbnailRoundTrip(t *testing.T) {
	thumb := &Thumbnail{Data: minimalBMP(32, 16)}
	thumb.Width, thumb.Height, thumb.Valid = validateBMP(thumb.Data)
	if !thumb.Valid {
		t.Fatal("constructed thumbnail should validate")
	}

	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := writeThumbnail(thumb, aw); err != nil {
		t.Fatalf("writeThumbnail failed: %v", err)
	}

	it := newPairIterator(NewAsciiReader(strings.NewReader(buf.String() + "0\nENDSEC\n")))
	got, err := readThumbnail(it)
	if err != nil {
		t.Fatalf("readThumbnail failed: %v", err)
	}
	if !got.Valid || got.Width != 32 || got.Height != 16 {
		t.Errorf("got = %+v, want a valid 32x16 thumbnail", got)
	}
	if !bytes.Equal(got.Data, thumb.Data) {
		t.Error("round-tripped thumbnail data does not match")
	}
}

func TestThumbnailCorruptDropsSilently(t *testing.T) {
	var buf bytes.Buffer
	aw := NewAsciiWriter(&buf, VersionR2018)
	if err := aw.Emit(IntPair(90, 4)); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if err := aw.Emit(BinaryPair(310, []byte{0, 1, 2, 3})); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	it := newPairIterator(NewAsciiReader(strings.NewReader(buf.String() + "0\nENDSEC\n")))
	got, err := readThumbnail(it)
	if err != nil {
		t.Fatalf("readThumbnail failed: %v", err)
	}
	if got.Valid {
		t.Error("garbage thumbnail data should not validate")
	}
}
