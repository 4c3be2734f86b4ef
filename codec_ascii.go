// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
)

// AsciiReader decodes the two-line-per-pair ASCII encoding (§4.A
// ASCII). Strings are transcoded from the resolved code page (or left
// as UTF-8 for R2007+) by the caller via SetEncoding once $DWGCODEPAGE
// has been seen, matching the "keep raw bytes, transcode once" design
// note in §9.
type AsciiReader struct {
	r       *bufio.Reader
	offset  int64
	lastOff int64
	enc     encoding.Encoding // nil means "already UTF-8, no transcoding"
}

// NewAsciiReader wraps r as an ASCII code-pair stream.
func NewAsciiReader(r io.Reader) *AsciiReader {
	return &AsciiReader{r: bufio.NewReader(r)}
}

// SetEncoding installs the code page string pairs should be
// transcoded from. Pass nil once the version is known to be R2007+.
func (a *AsciiReader) SetEncoding(enc encoding.Encoding) {
	a.enc = enc
}

// Offset implements PairReader.
func (a *AsciiReader) Offset() int64 { return a.lastOff }

func (a *AsciiReader) readLine() (string, error) {
	line, err := a.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	a.offset += int64(len(line))
	line = strings.TrimRight(line, "\n")
	line = strings.TrimRight(line, "\r")
	return line, nil
}

// Next implements PairReader.
func (a *AsciiReader) Next() (CodePair, bool, error) {
	a.lastOff = a.offset
	codeLine, err := a.readLine()
	if err != nil {
		if err == io.EOF {
			return CodePair{}, false, nil
		}
		return CodePair{}, false, err
	}
	codeLine = strings.TrimSpace(codeLine)
	if codeLine == "" {
		return a.Next()
	}
	code, err := strconv.Atoi(codeLine)
	if err != nil {
		return CodePair{}, false, &InvalidEncodingError{Offset: a.lastOff, Detail: fmt.Sprintf("non-numeric group code %q", codeLine)}
	}

	valueOff := a.offset
	valueLine, err := a.readLine()
	if err != nil {
		if err == io.EOF {
			return CodePair{}, false, &UnexpectedEndOfInputError{Offset: valueOff, Context: "code pair value"}
		}
		return CodePair{}, false, err
	}

	pair, err := a.decodeValue(code, valueLine)
	if err != nil {
		return CodePair{}, false, err
	}
	pair.Offset = a.lastOff
	return pair, true, nil
}

func (a *AsciiReader) decodeValue(code int, raw string) (CodePair, error) {
	kind := ValueKindForCode(code)
	switch kind {
	case KindString:
		return StringPair(code, a.decodeString(raw)), nil
	case KindDouble:
		v, err := parseDXFDouble(raw)
		if err != nil {
			return CodePair{}, &MalformedPairError{Offset: a.lastOff, Code: code, ValueExcerpt: raw}
		}
		return DoublePair(code, v), nil
	case KindShort:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 16)
		if err != nil {
			return CodePair{}, &MalformedPairError{Offset: a.lastOff, Code: code, ValueExcerpt: raw}
		}
		return ShortPair(code, int16(v)), nil
	case KindInt:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
		if err != nil {
			return CodePair{}, &MalformedPairError{Offset: a.lastOff, Code: code, ValueExcerpt: raw}
		}
		return IntPair(code, int32(v)), nil
	case KindLong:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return CodePair{}, &MalformedPairError{Offset: a.lastOff, Code: code, ValueExcerpt: raw}
		}
		return LongPair(code, v), nil
	case KindBool:
		v := strings.TrimSpace(raw)
		return BoolPair(code, v == "1"), nil
	case KindBinary:
		b, err := decodeHexChunk(raw)
		if err != nil {
			return CodePair{}, &MalformedPairError{Offset: a.lastOff, Code: code, ValueExcerpt: raw}
		}
		return BinaryPair(code, b), nil
	case KindHandle:
		h, err := ParseHandle(strings.TrimSpace(raw))
		if err != nil {
			return CodePair{}, &MalformedPairError{Offset: a.lastOff, Code: code, ValueExcerpt: raw}
		}
		return HandlePair(code, h), nil
	default:
		return StringPair(code, raw), nil
	}
}

// decodeString transcodes raw from the resolved code page (if any)
// and resolves \U+XXXX escapes into real code points.
func (a *AsciiReader) decodeString(raw string) string {
	s := raw
	if a.enc != nil {
		if decoded, err := a.enc.NewDecoder().String(raw); err == nil {
			s = decoded
		}
	}
	return resolveUnicodeEscapes(s)
}

// parseDXFDouble tolerates the locale-bugged legacy writers the
// format is infamous for: a comma radix point, and Fortran-style
// exponents such as "1.0e+00" (§4.A).
func parseDXFDouble(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}

// resolveUnicodeEscapes turns every \U+XXXX escape in s into the
// corresponding rune (§4.A, §8 boundary scenario).
func resolveUnicodeEscapes(s string) string {
	if !strings.Contains(s, "\\U+") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if i+7 <= len(s) && s[i:i+3] == "\\U+" {
			if v, err := strconv.ParseUint(s[i+3:i+7], 16, 32); err == nil && i+7 <= len(s) {
				b.WriteRune(rune(v))
				i += 7
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// escapeUnicode re-escapes code points outside ASCII into \U+XXXX
// form, the inverse of resolveUnicodeEscapes, used when writing pre-
// R2007 ASCII where raw UTF-8 cannot be trusted to round-trip through
// every downstream tool (§8 boundary scenario).
func escapeUnicode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r > 0x7E {
			fmt.Fprintf(&b, "\\U+%04X", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func decodeHexChunk(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex chunk")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		var v int64
		_, err := fmt.Sscanf(s[i*2:i*2+2], "%02X", &v)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

func encodeHexChunk(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}

// AsciiWriter emits the ASCII two-line-per-pair encoding (§4.A).
type AsciiWriter struct {
	w   io.Writer
	enc encoding.Encoding
	ver Version
}

// NewAsciiWriter wraps w as an ASCII code-pair sink targeting ver
// (which governs whether strings are \U+ escaped on write).
func NewAsciiWriter(w io.Writer, ver Version) *AsciiWriter {
	return &AsciiWriter{w: w, ver: ver}
}

// SetEncoding installs the code page strings should be transcoded to
// before writing. Pass nil for R2007+, which writes raw UTF-8.
func (a *AsciiWriter) SetEncoding(enc encoding.Encoding) {
	a.enc = enc
}

// Emit implements PairWriter.
func (a *AsciiWriter) Emit(pair CodePair) error {
	if _, err := fmt.Fprintf(a.w, "%3d\n", pair.Code); err != nil {
		return err
	}
	value, err := a.formatValue(pair)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.w, "%s\n", value)
	return err
}

func (a *AsciiWriter) formatValue(pair CodePair) (string, error) {
	switch pair.Kind {
	case KindString:
		s := pair.Str
		if a.ver.IsAtLeast(VersionR2007) {
			if a.enc != nil {
				if encoded, err := a.enc.NewEncoder().String(s); err == nil {
					return encoded, nil
				}
			}
			return s, nil
		}
		s = escapeUnicode(s)
		if a.enc != nil {
			if encoded, err := a.enc.NewEncoder().String(s); err == nil {
				return encoded, nil
			}
		}
		return s, nil
	case KindDouble:
		return strconv.FormatFloat(pair.F64, 'g', -1, 64), nil
	case KindShort:
		return strconv.Itoa(int(pair.I16)), nil
	case KindInt:
		return strconv.Itoa(int(pair.I32)), nil
	case KindLong:
		return strconv.FormatInt(pair.I64, 10), nil
	case KindBool:
		if pair.Bool {
			return "1", nil
		}
		return "0", nil
	case KindBinary:
		return encodeHexChunk(pair.Bin), nil
	case KindHandle:
		return pair.Handle.String(), nil
	default:
		return "", &WrongValueTypeError{Expected: KindString, Actual: pair.Kind}
	}
}
