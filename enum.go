// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// This file holds the small typed enums scattered across entity and
// header fields. Every one of them follows the same rule (§4.B,
// §9 Fallback-on-unknown): FromWire never fails, an out-of-range wire
// value silently becomes the documented default. ToWire is total in
// the other direction, since every Go-side value is by construction
// already one of the known constants.

// Color is a DXF color number (code 62). 0 means ByBlock, 256 means
// ByLayer, 257 means ByEntity; 1-255 index the standard AutoCAD color
// palette. Values outside -1..257 fall back to ByLayer.
type Color int16

// Reserved color values.
const (
	ColorByBlock  Color = 0
	ColorByLayer  Color = 256
	ColorByEntity Color = 257
	ColorForeground Color = -1
)

// ColorFromWire converts a raw code-62 value, defaulting to ByLayer
// when the value is outside the documented range.
func ColorFromWire(v int16) Color {
	c := Color(v)
	switch {
	case c == ColorByBlock, c == ColorByEntity, c == ColorForeground:
		return c
	case c >= 1 && c <= 255:
		return c
	case c == ColorByLayer:
		return c
	default:
		return ColorByLayer
	}
}

// ToWire returns the code-62 value for c.
func (c Color) ToWire() int16 { return int16(c) }

// Lineweight is a line thickness in hundredths of a millimeter (code
// 370), or one of the three symbolic values below.
type Lineweight int16

// Symbolic lineweight values.
const (
	LineweightByLayer  Lineweight = -1
	LineweightByBlock  Lineweight = -2
	LineweightDefault  Lineweight = -3
)

// Standard discrete lineweights, in hundredths of a millimeter.
var validLineweights = map[int16]bool{
	0: true, 5: true, 9: true, 13: true, 15: true, 18: true, 20: true,
	25: true, 30: true, 35: true, 40: true, 50: true, 53: true, 60: true,
	70: true, 80: true, 90: true, 100: true, 106: true, 120: true,
	140: true, 158: true, 200: true, 211: true,
}

// LineweightFromWire converts a raw code-370 value. Anything that is
// neither a symbolic value nor one of the discrete lineweights falls
// back to ByLayer.
func LineweightFromWire(v int16) Lineweight {
	switch v {
	case int16(LineweightByLayer), int16(LineweightByBlock), int16(LineweightDefault):
		return Lineweight(v)
	}
	if validLineweights[v] {
		return Lineweight(v)
	}
	return LineweightByLayer
}

// ToWire returns the code-370 value for w.
func (w Lineweight) ToWire() int16 { return int16(w) }

// Units enumerates the $INSUNITS / $LUNITS drawing unit identifiers.
type Units int16

// Supported drawing units. The numeric values are the wire values.
const (
	UnitsUnitless    Units = 0
	UnitsInches      Units = 1
	UnitsFeet        Units = 2
	UnitsMiles       Units = 3
	UnitsMillimeters Units = 4
	UnitsCentimeters Units = 5
	UnitsMeters      Units = 6
	UnitsKilometers  Units = 7
	UnitsMicroinches Units = 8
	UnitsMils        Units = 9
	UnitsYards       Units = 10
	UnitsAngstroms   Units = 11
	UnitsNanometers  Units = 12
	UnitsMicrons     Units = 13
	UnitsDecimeters  Units = 14
	UnitsDecameters  Units = 15
	UnitsHectometers Units = 16
	UnitsGigameters  Units = 17
	UnitsAstronomical Units = 18
	UnitsLightYears  Units = 19
	UnitsParsecs     Units = 20
)

// UnitsFromWire converts a raw $INSUNITS value, defaulting to
// Unitless for anything not in the documented 0-20 range.
func UnitsFromWire(v int16) Units {
	if v >= 0 && v <= 20 {
		return Units(v)
	}
	return UnitsUnitless
}

// ToWire returns the wire value for u.
func (u Units) ToWire() int16 { return int16(u) }

// DrawingDirection mirrors $ANGDIR: 0 counterclockwise, 1 clockwise.
type DrawingDirection int16

// The two documented directions.
const (
	CounterClockwise DrawingDirection = 0
	Clockwise        DrawingDirection = 1
)

// DrawingDirectionFromWire converts a raw $ANGDIR value, defaulting
// to CounterClockwise for anything other than 0 or 1.
func DrawingDirectionFromWire(v int16) DrawingDirection {
	if v == 1 {
		return Clockwise
	}
	return CounterClockwise
}

// ShadowMode mirrors an entity's code-284 shadow behaviour.
type ShadowMode int16

// Documented shadow modes.
const (
	ShadowCastsAndReceives ShadowMode = 0
	ShadowCasts            ShadowMode = 1
	ShadowReceives         ShadowMode = 2
	ShadowIgnores          ShadowMode = 3
)

// ShadowModeFromWire converts a raw code-284 value, defaulting to
// ShadowCastsAndReceives for anything outside 0-3.
func ShadowModeFromWire(v int16) ShadowMode {
	if v >= 0 && v <= 3 {
		return ShadowMode(v)
	}
	return ShadowCastsAndReceives
}

// HorizontalTextJustification mirrors group code 72 on TEXT/ATTRIB.
type HorizontalTextJustification int16

// Documented horizontal justifications.
const (
	HJustLeft HorizontalTextJustification = iota
	HJustCenter
	HJustRight
	HJustAligned
	HJustMiddle
	HJustFit
)

// HorizontalTextJustificationFromWire defaults to HJustLeft.
func HorizontalTextJustificationFromWire(v int16) HorizontalTextJustification {
	if v >= 0 && v <= 5 {
		return HorizontalTextJustification(v)
	}
	return HJustLeft
}
