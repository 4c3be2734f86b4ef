// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// binarySentinel is the 22-byte header every binary DXF stream opens
// with, pre-R13 and post-R13 alike (§4.A, §8 boundary scenario).
var binarySentinel = []byte("AutoCAD Binary DXF\r\n\x1a\x00")

// sniffBinary reports whether the first 22 bytes of data match the
// binary sentinel exactly, including the trailing NUL (§8: "missing
// NUL fails with InvalidEncoding" is enforced by the caller, which
// treats a near-miss as ASCII and lets the ASCII decoder fail loudly
// instead).
func sniffBinary(data []byte) bool {
	if len(data) < len(binarySentinel) {
		return false
	}
	for i, b := range binarySentinel {
		if data[i] != b {
			return false
		}
	}
	return true
}

// BinaryReader decodes both binary DXF sub-encodings (§4.A Pre-R13
// binary, Post-R13 binary). post selects which code/width rules apply;
// it is fixed once the sentinel and the first header pairs establish
// the version (Drawing.Load does this before constructing the reader
// for the body, but the sentinel line itself is always read the same
// way regardless of version).
type BinaryReader struct {
	r       *bufio.Reader
	offset  int64
	lastOff int64
	post    bool
}

// NewBinaryReader wraps r, positioned immediately after the 22-byte
// sentinel, as a binary code-pair stream. post selects post-R13 (codes
// always i16, handle-class values as 8 bytes) vs pre-R13 (single-byte
// codes with 0xFF escape, handles as NUL-terminated hex strings)
// framing.
func NewBinaryReader(r io.Reader, post bool) *BinaryReader {
	return &BinaryReader{r: bufio.NewReader(r), post: post}
}

// Offset implements PairReader.
func (b *BinaryReader) Offset() int64 { return b.lastOff }

func (b *BinaryReader) readByte() (byte, error) {
	c, err := b.r.ReadByte()
	if err == nil {
		b.offset++
	}
	return c, err
}

func (b *BinaryReader) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(b.r, buf)
	b.offset += int64(read)
	return buf, err
}

func (b *BinaryReader) readCode() (int, error) {
	if b.post {
		buf, err := b.readN(2)
		if err != nil {
			return 0, err
		}
		return int(int16(binary.LittleEndian.Uint16(buf))), nil
	}
	c, err := b.readByte()
	if err != nil {
		return 0, err
	}
	if c != 0xFF {
		return int(c), nil
	}
	buf, err := b.readN(2)
	if err != nil {
		return 0, err
	}
	return int(int16(binary.LittleEndian.Uint16(buf))), nil
}

func (b *BinaryReader) readCString() (string, error) {
	var buf []byte
	for {
		c, err := b.readByte()
		if err != nil {
			return "", err
		}
		if c == 0 {
			break
		}
		buf = append(buf, c)
	}
	return string(buf), nil
}

// Next implements PairReader.
func (b *BinaryReader) Next() (CodePair, bool, error) {
	b.lastOff = b.offset
	code, err := b.readCode()
	if err != nil {
		if err == io.EOF {
			return CodePair{}, false, nil
		}
		return CodePair{}, false, &InvalidEncodingError{Offset: b.lastOff, Detail: "truncated code"}
	}
	pair, err := b.readValue(code)
	if err != nil {
		return CodePair{}, false, err
	}
	pair.Offset = b.lastOff
	return pair, true, nil
}

func (b *BinaryReader) readValue(code int) (CodePair, error) {
	kind := ValueKindForCode(code)
	switch kind {
	case KindString:
		s, err := b.readCString()
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary string value"}
		}
		return StringPair(code, s), nil
	case KindDouble:
		buf, err := b.readN(8)
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary double value"}
		}
		return DoublePair(code, math.Float64frombits(binary.LittleEndian.Uint64(buf))), nil
	case KindShort:
		buf, err := b.readN(2)
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary short value"}
		}
		return ShortPair(code, int16(binary.LittleEndian.Uint16(buf))), nil
	case KindInt:
		buf, err := b.readN(4)
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary int value"}
		}
		return IntPair(code, int32(binary.LittleEndian.Uint32(buf))), nil
	case KindLong:
		buf, err := b.readN(8)
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary long value"}
		}
		return LongPair(code, int64(binary.LittleEndian.Uint64(buf))), nil
	case KindBool:
		c, err := b.readByte()
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary bool value"}
		}
		return BoolPair(code, c != 0), nil
	case KindBinary:
		n, err := b.readByte()
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary chunk length"}
		}
		buf, err := b.readN(int(n))
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary chunk"}
		}
		return BinaryPair(code, buf), nil
	case KindHandle:
		if !b.post {
			s, err := b.readCString()
			if err != nil {
				return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary handle string"}
			}
			h, err := ParseHandle(s)
			if err != nil {
				return CodePair{}, &MalformedPairError{Offset: b.lastOff, Code: code, ValueExcerpt: s}
			}
			return HandlePair(code, h), nil
		}
		buf, err := b.readN(8)
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary handle value"}
		}
		return HandlePair(code, Handle(binary.LittleEndian.Uint64(buf))), nil
	default:
		s, err := b.readCString()
		if err != nil {
			return CodePair{}, &UnexpectedEndOfInputError{Offset: b.lastOff, Context: "binary fallback string"}
		}
		return StringPair(code, s), nil
	}
}

// BinaryWriter emits pre-R13 or post-R13 binary code pairs (§4.A).
type BinaryWriter struct {
	w    io.Writer
	post bool
}

// NewBinaryWriter wraps w, which must already carry the 22-byte
// sentinel, as a binary code-pair sink.
func NewBinaryWriter(w io.Writer, post bool) *BinaryWriter {
	return &BinaryWriter{w: w, post: post}
}

func (b *BinaryWriter) writeCode(code int) error {
	if b.post {
		return binary.Write(b.w, binary.LittleEndian, int16(code))
	}
	if code >= 0 && code <= 0xFE {
		return binary.Write(b.w, binary.LittleEndian, byte(code))
	}
	if _, err := b.w.Write([]byte{0xFF}); err != nil {
		return err
	}
	return binary.Write(b.w, binary.LittleEndian, int16(code))
}

func (b *BinaryWriter) writeCString(s string) error {
	if _, err := io.WriteString(b.w, s); err != nil {
		return err
	}
	_, err := b.w.Write([]byte{0})
	return err
}

// Emit implements PairWriter.
func (b *BinaryWriter) Emit(pair CodePair) error {
	if err := b.writeCode(pair.Code); err != nil {
		return err
	}
	switch pair.Kind {
	case KindString:
		return b.writeCString(pair.Str)
	case KindDouble:
		return binary.Write(b.w, binary.LittleEndian, pair.F64)
	case KindShort:
		return binary.Write(b.w, binary.LittleEndian, pair.I16)
	case KindInt:
		return binary.Write(b.w, binary.LittleEndian, pair.I32)
	case KindLong:
		return binary.Write(b.w, binary.LittleEndian, pair.I64)
	case KindBool:
		v := byte(0)
		if pair.Bool {
			v = 1
		}
		_, err := b.w.Write([]byte{v})
		return err
	case KindBinary:
		if _, err := b.w.Write([]byte{byte(len(pair.Bin))}); err != nil {
			return err
		}
		_, err := b.w.Write(pair.Bin)
		return err
	case KindHandle:
		if !b.post || ValueKindForCode(pair.Code) != KindHandle {
			return b.writeCString(pair.Handle.String())
		}
		return binary.Write(b.w, binary.LittleEndian, uint64(pair.Handle))
	default:
		return &WrongValueTypeError{Expected: KindString, Actual: pair.Kind}
	}
}

// WriteSentinel writes the 22-byte binary header.
func WriteSentinel(w io.Writer) error {
	_, err := w.Write(binarySentinel)
	return err
}
