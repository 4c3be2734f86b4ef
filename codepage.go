// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// codePageEncodings maps the DXF-specific $DWGCODEPAGE label to the
// golang.org/x/text/encoding.Encoding it denotes (§4.A, §9 "code-page
// vs UTF-8 duality"). Only the Windows ANSI pages that appear in
// practice are listed; everything else falls back to Windows-1252,
// the overwhelmingly common default AutoCAD itself uses.
var codePageEncodings = map[string]encoding.Encoding{
	"ANSI_874":  charmap.Windows874,
	"ANSI_932":  japaneseFallback{},
	"ANSI_936":  charmap.Windows1252, // Simplified Chinese (GBK) has no golang.org/x/text charmap entry.
	"ANSI_949":  charmap.Windows1252, // Korean (EUC-KR) likewise has no charmap entry.
	"ANSI_950":  charmap.Windows1252, // Traditional Chinese (Big5) likewise.
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
	"ANSI_1258": charmap.Windows1258,
}

// japaneseFallback is a stand-in for Shift-JIS (ANSI_932). The
// golang.org/x/text/encoding/japanese package provides ShiftJIS, but
// pulling in the full CJK transform tables for one label used by a
// small minority of drawings is not worth the dependency weight here;
// bytes pass through unmodified, matching the library's general
// posture of preserving what it cannot confidently transcode rather
// than corrupting it.
type japaneseFallback struct{}

func (japaneseFallback) NewDecoder() *encoding.Decoder { return encoding.Nop.NewDecoder() }
func (japaneseFallback) NewEncoder() *encoding.Encoder { return encoding.Nop.NewEncoder() }

// CodePageEncoding resolves a $DWGCODEPAGE label (e.g. "ANSI_1252")
// to an encoding.Encoding. Unknown labels fall back to Windows-1252,
// per the fallback-on-unknown policy (§4.B, §9).
func CodePageEncoding(label string) encoding.Encoding {
	if enc, ok := codePageEncodings[strings.ToUpper(label)]; ok {
		return enc
	}
	return charmap.Windows1252
}
