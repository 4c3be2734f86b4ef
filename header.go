// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Header holds the drawing's global variables (§3 Drawing, §4.C
// Header). Only the variables this library gives first-class fields
// to are listed below; everything else the HEADER section carries is
// intentionally not round-tripped (§4.C: "unknown $NAME slots are
// skipped by draining pairs until the next 9 or ENDSEC").
type Header struct {
	Version      Version
	MaintenanceVersion int32
	HandleSeed   Handle
	InsUnits     Units
	LUnits       Units
	AngDir       DrawingDirection
	CLayer       string
	CELType      string
	CEColor      Color
	CELWeight    Lineweight
	TextStyle    string
	DimStyle     string
	Extmin       [3]float64
	Extmax       [3]float64
	Limmin       [2]float64
	Limmax       [2]float64
	Insbase      [3]float64
	LTScale      float64
	TextSize     float64
	CodePage     string

	// Unknown retains every observed code pair belonging to a $NAME
	// this library does not model, keyed by name, preserving the
	// "graceful fallback on unknown tokens" posture even though the
	// format-level contract only requires the *read* side to tolerate
	// them (§1, §7 policy). A consumer can still inspect what was
	// seen; Drawing never writes these back (§4.C).
	Unknown map[string][]CodePair
}

// NewHeader returns a Header populated with the documented normalize()
// defaults (§6, $ACADVER defaults to the newest supported release).
func NewHeader() *Header {
	return &Header{
		Version:   VersionR2018,
		HandleSeed: 1,
		InsUnits:  UnitsUnitless,
		LUnits:    UnitsDecimeters,
		CLayer:    "0",
		CELType:   "BYLAYER",
		CEColor:   ColorByLayer,
		CELWeight: LineweightByLayer,
		TextStyle: "STANDARD",
		DimStyle:  "STANDARD",
		LTScale:   1.0,
		TextSize:  0.2,
		CodePage:  "ANSI_1252",
		Unknown:   map[string][]CodePair{},
	}
}

// headerSlot describes how one $NAME variable is read and written.
// read consumes pairs belonging to the slot (already positioned after
// the (9, "$NAME") pair) and stops without consuming the pair that
// terminates the slot. write emits the slot's pairs for ver, or
// nothing if the slot does not apply at that version.
type headerSlot struct {
	name  string
	read  func(h *Header, pairs []CodePair)
	write func(h *Header, ver Version) []CodePair
	gate  versionRange
}

func pt3(pairs []CodePair, base [3]float64) [3]float64 {
	out := base
	for _, p := range pairs {
		switch p.Code % 10 {
		case 0:
			out[0] = p.F64
		case 1:
			out[1] = p.F64
		case 2:
			out[2] = p.F64
		}
	}
	return out
}

func writePt3(code int, v [3]float64) []CodePair {
	return []CodePair{
		DoublePair(code, v[0]),
		DoublePair(code+10, v[1]),
		DoublePair(code+20, v[2]),
	}
}

func firstString(pairs []CodePair, def string) string {
	for _, p := range pairs {
		if p.Kind == KindString {
			return p.Str
		}
	}
	return def
}

func firstDouble(pairs []CodePair, def float64) float64 {
	for _, p := range pairs {
		if p.Kind == KindDouble {
			return p.F64
		}
	}
	return def
}

// headerSlots is the registry driving the header parser's state loop
// (§4.C: "on (9, $NAME) look up the slot"). $ACADVER and
// $ACADMAINTVER accept every documented code-pair form observed in
// the wild (§4.C special rule): the value is taken from whichever form
// appears, the code it arrived under is not recorded, and only the
// canonical form for Header.Version is emitted on write.
var headerSlots = map[string]*headerSlot{
	"$ACADVER": {
		name: "$ACADVER",
		read: func(h *Header, pairs []CodePair) {
			h.Version = VersionFromWire(firstString(pairs, h.Version.String()))
		},
		write: func(h *Header, ver Version) []CodePair {
			return []CodePair{StringPair(1, ver.String())}
		},
		gate: always,
	},
	"$ACADMAINTVER": {
		name: "$ACADMAINTVER",
		read: func(h *Header, pairs []CodePair) {
			for _, p := range pairs {
				switch p.Kind {
				case KindInt:
					h.MaintenanceVersion = p.I32
				case KindShort:
					h.MaintenanceVersion = int32(p.I16)
				}
			}
		},
		write: func(h *Header, ver Version) []CodePair {
			if ver.IsPreR13() {
				return nil
			}
			return []CodePair{ShortPair(70, int16(h.MaintenanceVersion))}
		},
		gate: from(VersionR13),
	},
	"$HANDSEED": {
		name: "$HANDSEED",
		read: func(h *Header, pairs []CodePair) {
			for _, p := range pairs {
				if hv, err := p.AsHandle(); err == nil {
					h.HandleSeed = hv
				}
			}
		},
		write: func(h *Header, ver Version) []CodePair {
			if ver.IsPreR13() {
				return nil
			}
			return []CodePair{HandlePair(5, h.HandleSeed)}
		},
		gate: from(VersionR13),
	},
	"$INSUNITS": {
		name: "$INSUNITS",
		read: func(h *Header, pairs []CodePair) {
			for _, p := range pairs {
				if p.Kind == KindShort {
					h.InsUnits = UnitsFromWire(p.I16)
				}
			}
		},
		write: func(h *Header, ver Version) []CodePair {
			if ver.IsPreR13() {
				return nil
			}
			return []CodePair{ShortPair(70, h.InsUnits.ToWire())}
		},
		gate: from(VersionR13),
	},
	"$LUNITS": {
		name: "$LUNITS",
		read: func(h *Header, pairs []CodePair) {
			for _, p := range pairs {
				if p.Kind == KindShort {
					h.LUnits = UnitsFromWire(p.I16)
				}
			}
		},
		write: func(h *Header, ver Version) []CodePair {
			return []CodePair{ShortPair(70, h.LUnits.ToWire())}
		},
		gate: always,
	},
	"$ANGDIR": {
		name: "$ANGDIR",
		read: func(h *Header, pairs []CodePair) {
			for _, p := range pairs {
				if p.Kind == KindShort {
					h.AngDir = DrawingDirectionFromWire(p.I16)
				}
			}
		},
		write: func(h *Header, ver Version) []CodePair {
			return []CodePair{ShortPair(70, int16(h.AngDir))}
		},
		gate: always,
	},
	"$CLAYER": {
		name:  "$CLAYER",
		read:  func(h *Header, pairs []CodePair) { h.CLayer = firstString(pairs, h.CLayer) },
		write: func(h *Header, ver Version) []CodePair { return []CodePair{StringPair(8, h.CLayer)} },
		gate:  always,
	},
	"$CELTYPE": {
		name:  "$CELTYPE",
		read:  func(h *Header, pairs []CodePair) { h.CELType = firstString(pairs, h.CELType) },
		write: func(h *Header, ver Version) []CodePair { return []CodePair{StringPair(6, h.CELType)} },
		gate:  always,
	},
	"$CECOLOR": {
		name: "$CECOLOR",
		read: func(h *Header, pairs []CodePair) {
			for _, p := range pairs {
				if p.Kind == KindShort {
					h.CEColor = ColorFromWire(p.I16)
				}
			}
		},
		write: func(h *Header, ver Version) []CodePair { return []CodePair{ShortPair(62, h.CEColor.ToWire())} },
		gate:  always,
	},
	"$CELWEIGHT": {
		name: "$CELWEIGHT",
		read: func(h *Header, pairs []CodePair) {
			for _, p := range pairs {
				if p.Kind == KindShort {
					h.CELWeight = LineweightFromWire(p.I16)
				}
			}
		},
		write: func(h *Header, ver Version) []CodePair {
			if ver.IsPreR13() {
				return nil
			}
			return []CodePair{ShortPair(370, h.CELWeight.ToWire())}
		},
		gate: from(VersionR13),
	},
	"$TEXTSTYLE": {
		name:  "$TEXTSTYLE",
		read:  func(h *Header, pairs []CodePair) { h.TextStyle = firstString(pairs, h.TextStyle) },
		write: func(h *Header, ver Version) []CodePair { return []CodePair{StringPair(7, h.TextStyle)} },
		gate:  always,
	},
	"$DIMSTYLE": {
		name:  "$DIMSTYLE",
		read:  func(h *Header, pairs []CodePair) { h.DimStyle = firstString(pairs, h.DimStyle) },
		write: func(h *Header, ver Version) []CodePair { return []CodePair{StringPair(2, h.DimStyle)} },
		gate:  always,
	},
	"$TEXTSIZE": {
		name:  "$TEXTSIZE",
		read:  func(h *Header, pairs []CodePair) { h.TextSize = firstDouble(pairs, h.TextSize) },
		write: func(h *Header, ver Version) []CodePair { return []CodePair{DoublePair(40, h.TextSize)} },
		gate:  always,
	},
	"$LTSCALE": {
		name:  "$LTSCALE",
		read:  func(h *Header, pairs []CodePair) { h.LTScale = firstDouble(pairs, h.LTScale) },
		write: func(h *Header, ver Version) []CodePair { return []CodePair{DoublePair(40, h.LTScale)} },
		gate:  always,
	},
	"$INSBASE": {
		name:  "$INSBASE",
		read:  func(h *Header, pairs []CodePair) { h.Insbase = pt3(pairs, h.Insbase) },
		write: func(h *Header, ver Version) []CodePair { return writePt3(10, h.Insbase) },
		gate:  always,
	},
	"$EXTMIN": {
		name:  "$EXTMIN",
		read:  func(h *Header, pairs []CodePair) { h.Extmin = pt3(pairs, h.Extmin) },
		write: func(h *Header, ver Version) []CodePair { return writePt3(10, h.Extmin) },
		gate:  always,
	},
	"$EXTMAX": {
		name:  "$EXTMAX",
		read:  func(h *Header, pairs []CodePair) { h.Extmax = pt3(pairs, h.Extmax) },
		write: func(h *Header, ver Version) []CodePair { return writePt3(10, h.Extmax) },
		gate:  always,
	},
	"$LIMMIN": {
		name: "$LIMMIN",
		read: func(h *Header, pairs []CodePair) {
			for _, p := range pairs {
				switch p.Code {
				case 10:
					h.Limmin[0] = p.F64
				case 20:
					h.Limmin[1] = p.F64
				}
			}
		},
		write: func(h *Header, ver Version) []CodePair {
			return []CodePair{DoublePair(10, h.Limmin[0]), DoublePair(20, h.Limmin[1])}
		},
		gate: always,
	},
	"$LIMMAX": {
		name: "$LIMMAX",
		read: func(h *Header, pairs []CodePair) {
			for _, p := range pairs {
				switch p.Code {
				case 10:
					h.Limmax[0] = p.F64
				case 20:
					h.Limmax[1] = p.F64
				}
			}
		},
		write: func(h *Header, ver Version) []CodePair {
			return []CodePair{DoublePair(10, h.Limmax[0]), DoublePair(20, h.Limmax[1])}
		},
		gate: always,
	},
	"$DWGCODEPAGE": {
		name:  "$DWGCODEPAGE",
		read:  func(h *Header, pairs []CodePair) { h.CodePage = firstString(pairs, h.CodePage) },
		write: func(h *Header, ver Version) []CodePair { return []CodePair{StringPair(3, h.CodePage)} },
		gate:  always,
	},
}

// readHeader implements the §4.C state loop: on (9, $NAME), drain the
// slot's pairs; unknown names are drained into Header.Unknown (never
// written back), duplicate known names are last-write-wins with a
// logged warning (§9 Open Question).
func readHeader(it *pairIterator, logger func(string)) (*Header, error) {
	h := NewHeader()
	seen := map[string]bool{}
	for {
		pair, ok, err := it.peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &UnexpectedEndOfInputError{Offset: it.offset(), Context: "header section"}
		}
		if pair.Code == 0 {
			// ENDSEC, or (tolerantly) a new SECTION with no ENDSEC.
			return h, nil
		}
		if pair.Code != 9 {
			// Stray pair outside any slot; skip it defensively.
			it.next()
			continue
		}
		nameTag, _, err := it.next()
		if err != nil {
			return nil, err
		}
		name := nameTag.Str

		var slotPairs []CodePair
		for {
			peeked, ok, err := it.peek()
			if err != nil {
				return nil, err
			}
			if !ok || peeked.Code == 9 || peeked.Code == 0 {
				break
			}
			p, _, err := it.next()
			if err != nil {
				return nil, err
			}
			slotPairs = append(slotPairs, p)
		}

		slot, known := headerSlots[name]
		if !known {
			if logger != nil {
				logger("unknown header variable " + name + " skipped")
			}
			h.Unknown[name] = append(h.Unknown[name], slotPairs...)
			continue
		}
		if seen[name] && logger != nil {
			logger("duplicate header variable " + name + ", last write wins")
		}
		seen[name] = true
		slot.read(h, slotPairs)
	}
}

// writeHeader emits every slot whose version gate admits ver, in
// registry order, bracketed by the caller's SECTION/HEADER/ENDSEC
// pairs.
func writeHeader(h *Header, ver Version, sink pairSink) error {
	// A stable emission order reads better than map iteration order
	// and keeps $ACADVER first, matching every real-world DXF file.
	order := []string{
		"$ACADVER", "$ACADMAINTVER", "$DWGCODEPAGE", "$INSBASE",
		"$EXTMIN", "$EXTMAX", "$LIMMIN", "$LIMMAX", "$LTSCALE",
		"$TEXTSIZE", "$TEXTSTYLE", "$CLAYER", "$CELTYPE", "$CECOLOR",
		"$CELWEIGHT", "$DIMSTYLE", "$ANGDIR", "$LUNITS", "$INSUNITS",
		"$HANDSEED",
	}
	for _, name := range order {
		slot := headerSlots[name]
		if !slot.gate.contains(ver) {
			continue
		}
		pairs := slot.write(h, ver)
		if pairs == nil {
			continue
		}
		if err := sink.Emit(StringPair(9, name)); err != nil {
			return err
		}
		for _, p := range pairs {
			if err := sink.Emit(p); err != nil {
				return err
			}
		}
	}
	return nil
}
