// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "fmt"

// ValueKind identifies which field of a CodePair carries the value.
type ValueKind int

// The seven wire value variants plus the handle-as-string case.
const (
	KindString ValueKind = iota
	KindDouble
	KindShort
	KindInt
	KindLong
	KindBool
	KindBinary
	KindHandle
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDouble:
		return "double"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindBool:
		return "bool"
	case KindBinary:
		return "binary"
	case KindHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// CodePair is a single tagged primitive read from, or about to be
// written to, a drawing interchange stream. Exactly one of the value
// fields is meaningful, selected by Kind.
type CodePair struct {
	Code int

	Kind ValueKind

	Str    string
	F64    float64
	I16    int16
	I32    int32
	I64    int64
	Bool   bool
	Bin    []byte
	Handle Handle

	// Offset is the byte offset of this pair in the source stream.
	// Zero when the pair was constructed in memory rather than read.
	Offset int64
}

// StringPair builds a string-valued code pair.
func StringPair(code int, value string) CodePair {
	return CodePair{Code: code, Kind: KindString, Str: value}
}

// DoublePair builds a double-valued code pair.
func DoublePair(code int, value float64) CodePair {
	return CodePair{Code: code, Kind: KindDouble, F64: value}
}

// ShortPair builds a 16-bit integer code pair.
func ShortPair(code int, value int16) CodePair {
	return CodePair{Code: code, Kind: KindShort, I16: value}
}

// IntPair builds a 32-bit integer code pair.
func IntPair(code int, value int32) CodePair {
	return CodePair{Code: code, Kind: KindInt, I32: value}
}

// LongPair builds a 64-bit integer code pair.
func LongPair(code int, value int64) CodePair {
	return CodePair{Code: code, Kind: KindLong, I64: value}
}

// BoolPair builds a boolean-valued code pair.
func BoolPair(code int, value bool) CodePair {
	return CodePair{Code: code, Kind: KindBool, Bool: value}
}

// BinaryPair builds a binary-chunk code pair.
func BinaryPair(code int, value []byte) CodePair {
	return CodePair{Code: code, Kind: KindBinary, Bin: value}
}

// HandlePair builds a handle-valued code pair.
func HandlePair(code int, value Handle) CodePair {
	return CodePair{Code: code, Kind: KindHandle, Handle: value}
}

// AsString returns the string value, or a *WrongValueTypeError if the
// pair does not carry one.
func (p CodePair) AsString() (string, error) {
	if p.Kind != KindString {
		return "", &WrongValueTypeError{Expected: KindString, Actual: p.Kind}
	}
	return p.Str, nil
}

// AsDouble returns the double value, or a *WrongValueTypeError.
func (p CodePair) AsDouble() (float64, error) {
	if p.Kind != KindDouble {
		return 0, &WrongValueTypeError{Expected: KindDouble, Actual: p.Kind}
	}
	return p.F64, nil
}

// AsShort returns the short value, or a *WrongValueTypeError.
func (p CodePair) AsShort() (int16, error) {
	if p.Kind != KindShort {
		return 0, &WrongValueTypeError{Expected: KindShort, Actual: p.Kind}
	}
	return p.I16, nil
}

// AsInt returns the int value, or a *WrongValueTypeError.
func (p CodePair) AsInt() (int32, error) {
	if p.Kind != KindInt {
		return 0, &WrongValueTypeError{Expected: KindInt, Actual: p.Kind}
	}
	return p.I32, nil
}

// AsLong returns the long value, or a *WrongValueTypeError.
func (p CodePair) AsLong() (int64, error) {
	if p.Kind != KindLong {
		return 0, &WrongValueTypeError{Expected: KindLong, Actual: p.Kind}
	}
	return p.I64, nil
}

// AsBool returns the bool value, or a *WrongValueTypeError.
func (p CodePair) AsBool() (bool, error) {
	if p.Kind != KindBool {
		return false, &WrongValueTypeError{Expected: KindBool, Actual: p.Kind}
	}
	return p.Bool, nil
}

// AsBinary returns the binary chunk, or a *WrongValueTypeError.
func (p CodePair) AsBinary() ([]byte, error) {
	if p.Kind != KindBinary {
		return nil, &WrongValueTypeError{Expected: KindBinary, Actual: p.Kind}
	}
	return p.Bin, nil
}

// AsHandle returns the handle value. Codes 320-329 carry a handle
// encoded as a hex string; codes 330-369 carry a true handle value.
// Both kinds are accepted here since the distinction is purely a wire
// encoding detail (§3 Handle, §4.A code-to-variant mapping).
func (p CodePair) AsHandle() (Handle, error) {
	switch p.Kind {
	case KindHandle:
		return p.Handle, nil
	case KindString:
		h, err := ParseHandle(p.Str)
		if err != nil {
			return 0, &WrongValueTypeError{Expected: KindHandle, Actual: p.Kind}
		}
		return h, nil
	default:
		return 0, &WrongValueTypeError{Expected: KindHandle, Actual: p.Kind}
	}
}

// IsStructural reports whether this pair is the pseudo-pair marking a
// section/entity/EOF boundary: code 0 carrying a type name, SECTION,
// ENDSEC, or EOF (§3 Code pair).
func (p CodePair) IsStructural() bool {
	return p.Code == 0 && p.Kind == KindString
}

func (p CodePair) String() string {
	switch p.Kind {
	case KindString:
		return fmt.Sprintf("(%d, %q)", p.Code, p.Str)
	case KindDouble:
		return fmt.Sprintf("(%d, %g)", p.Code, p.F64)
	case KindShort:
		return fmt.Sprintf("(%d, %d)", p.Code, p.I16)
	case KindInt:
		return fmt.Sprintf("(%d, %d)", p.Code, p.I32)
	case KindLong:
		return fmt.Sprintf("(%d, %d)", p.Code, p.I64)
	case KindBool:
		return fmt.Sprintf("(%d, %t)", p.Code, p.Bool)
	case KindBinary:
		return fmt.Sprintf("(%d, % x)", p.Code, p.Bin)
	case KindHandle:
		return fmt.Sprintf("(%d, %s)", p.Code, p.Handle)
	default:
		return fmt.Sprintf("(%d, ?)", p.Code)
	}
}

// ValueKindForCode returns the wire value variant the given group code
// maps to, per the fixed range table in §3. Codes outside every
// documented range default to KindString, which is the DXF convention
// for comment/custom codes.
func ValueKindForCode(code int) ValueKind {
	switch {
	case code >= 0 && code <= 9:
		return KindString
	case code >= 10 && code <= 59:
		return KindDouble
	case code >= 60 && code <= 79:
		return KindShort
	case code >= 90 && code <= 99:
		return KindInt
	case code >= 100 && code <= 102:
		return KindString
	case code == 105:
		return KindHandle
	case code >= 110 && code <= 149:
		return KindDouble
	case code >= 160 && code <= 169:
		return KindLong
	case code >= 170 && code <= 179:
		return KindShort
	case code >= 210 && code <= 239:
		return KindDouble
	case code >= 270 && code <= 289:
		return KindShort
	case code >= 290 && code <= 299:
		return KindBool
	case code >= 300 && code <= 309:
		return KindString
	case code >= 310 && code <= 319:
		return KindBinary
	case code >= 320 && code <= 329:
		return KindHandle
	case code >= 330 && code <= 369:
		return KindHandle
	case code >= 370 && code <= 389:
		return KindShort
	case code >= 390 && code <= 399:
		return KindHandle
	case code >= 400 && code <= 409:
		return KindShort
	case code >= 410 && code <= 419:
		return KindString
	case code >= 420 && code <= 429:
		return KindInt
	case code >= 430 && code <= 439:
		return KindString
	case code >= 440 && code <= 449:
		return KindInt
	case code >= 450 && code <= 459:
		return KindLong
	case code >= 460 && code <= 469:
		return KindDouble
	case code >= 470 && code <= 481:
		return KindString
	case code == 999:
		return KindString
	case code >= 1000 && code <= 1003:
		return KindString
	case code >= 1004 && code <= 1004:
		return KindBinary
	case code >= 1005 && code <= 1005:
		return KindHandle
	case code >= 1010 && code <= 1059:
		return KindDouble
	case code >= 1060 && code <= 1070:
		return KindShort
	case code == 1071:
		return KindInt
	default:
		return KindString
	}
}
