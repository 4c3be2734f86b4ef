// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// HatchEdge is one polyline vertex of a boundary path. Only the
// polyline shape (bit 2 of the owning path's code-92 flag, code 10/20
// vertices) is modeled; the pairs of other edge types are skipped on
// read and not preserved.
type HatchEdge struct {
	Point [2]float64
	Bulge float64
}

// HatchBoundaryPath is one loop of a HATCH's boundary (§4.E "HATCH
// boundary paths"): a path-type flag, a run of edges whose count is
// given inline (code 93), and a source-entity-handle count (code 97)
// trailing it. Nested inside the entity body between a 91 "number of
// paths" count and the pattern/style tail.
type HatchBoundaryPath struct {
	Flags     int16
	IsPolyline bool
	Edges     []HatchEdge
	IsClosed  bool
	// SourceHandles are the boundary's associated source objects (code
	// 330 inside a path, counted by code 97): entity references that
	// resolve like any other cross-reference, via Drawing.fixupPointers.
	SourceHandles []Pointer
}

// Hatch is a filled-area entity. Its boundary paths are a count-led,
// flag-discriminated nested structure that cannot be expressed as a
// flat field table (§4.E "HATCH boundary paths").
type Hatch struct {
	EntityData
	Elevation       [3]float64
	ExtrusionDir    [3]float64
	PatternName     string
	IsSolidFill     bool
	PatternAngle    float64
	PatternScale    float64
	BoundaryPaths   []*HatchBoundaryPath
	HatchStyle      int16
	PatternType     int16
}

func (h *Hatch) TypeName() string    { return "HATCH" }
func (h *Hatch) Data() *EntityData   { return &h.EntityData }
func (h *Hatch) MinVersion() Version { return VersionR14 }
func (h *Hatch) MaxVersion() Version { return VersionR2018 }

func (h *Hatch) ApplyPair(pair CodePair) (bool, error) { return false, nil }

func (h *Hatch) ReadBody(it *pairIterator, d *Drawing) error {
	var pendingPathCount int32 = -1
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || peeked.Code == 0 {
			return nil
		}
		pair, _, err := it.next()
		if err != nil {
			return err
		}
		switch pair.Code {
		case 102:
			ext, err := readExtensionData(it, pair, maxExtensionDataDepth)
			if err != nil {
				return err
			}
			h.ExtensionData = append(h.ExtensionData, ext)
		case 1001:
			xd, err := readXData(it, pair)
			if err != nil {
				return err
			}
			h.XData = append(h.XData, xd)
		case 5:
			if hh, err := pair.AsHandle(); err == nil {
				h.Handle = hh
			}
		case 330:
			if hh, err := pair.AsHandle(); err == nil {
				h.Owner = NewPointer(hh)
			}
		case 30:
			h.Elevation[2] = pair.F64
		case 210:
			h.ExtrusionDir[0] = pair.F64
		case 220:
			h.ExtrusionDir[1] = pair.F64
		case 230:
			h.ExtrusionDir[2] = pair.F64
		case 2:
			h.PatternName = pair.Str
		case 70:
			h.IsSolidFill = pair.I16 != 0
		case 75:
			h.HatchStyle = pair.I16
		case 76:
			h.PatternType = pair.I16
		case 52:
			h.PatternAngle = pair.F64
		case 41:
			h.PatternScale = pair.F64
		case 91:
			// Number of boundary paths to read next.
			pendingPathCount = pair.I32
			for n := int32(0); n < pendingPathCount; n++ {
				bp, err := readHatchBoundaryPath(it)
				if err != nil {
					return err
				}
				h.BoundaryPaths = append(h.BoundaryPaths, bp)
			}
		default:
			if !applyBaseEntityField(&h.EntityData, pair) {
				h.RawPairs = append(h.RawPairs, pair)
			}
		}
	}
}

// readHatchBoundaryPath reads one loop: a path-type flag (92), and if
// the polyline bit is set, a vertex count (93) then that many
// 10/20(/42) vertices; otherwise an edge count (93) whose edge pairs
// (line/arc/ellipse/spline edges) are skipped up to the 97 count and
// not preserved, since those edge types are out of this module's
// representative scope. Either way, a
// trailing source-handle count (97) and its handles are read.
func readHatchBoundaryPath(it *pairIterator) (*HatchBoundaryPath, error) {
	bp := &HatchBoundaryPath{}
	flagPair, ok, err := it.next()
	if err != nil {
		return nil, err
	}
	if !ok || flagPair.Code != 92 {
		return nil, &MalformedPairError{Offset: it.offset(), Code: 92, ValueExcerpt: "expected hatch boundary path flag"}
	}
	bp.Flags = int16(flagPair.I32)
	bp.IsPolyline = bp.Flags&2 != 0

	if bp.IsPolyline {
		if hasBulge, _, err := it.next(); err == nil && hasBulge.Code == 72 {
			// consumed: "has bulge" flag, not separately tracked
		} else if err != nil {
			return nil, err
		}
		closedPair, ok, err := it.next()
		if err != nil {
			return nil, err
		}
		if ok && closedPair.Code == 73 {
			bp.IsClosed = closedPair.I16 != 0
		}
		countPair, ok, err := it.next()
		if err != nil {
			return nil, err
		}
		if !ok || countPair.Code != 93 {
			return nil, &MalformedPairError{Offset: it.offset(), Code: 93, ValueExcerpt: "expected hatch vertex count"}
		}
		for n := int32(0); n < countPair.I32; n++ {
			var edge HatchEdge
			xp, _, err := it.next()
			if err != nil {
				return nil, err
			}
			edge.Point[0] = xp.F64
			yp, _, err := it.next()
			if err != nil {
				return nil, err
			}
			edge.Point[1] = yp.F64
			if peeked, ok, err := it.peek(); err == nil && ok && peeked.Code == 42 {
				bulgePair, _, _ := it.next()
				edge.Bulge = bulgePair.F64
			}
			bp.Edges = append(bp.Edges, edge)
		}
	} else {
		countPair, ok, err := it.next()
		if err != nil {
			return nil, err
		}
		if ok && countPair.Code == 93 {
			// Non-polyline edge types (line/arc/ellipse/spline) are
			// outside this module's representative scope; skip their
			// pairs rather than misparse them, preserving nothing.
			for {
				peeked, ok, err := it.peek()
				if err != nil {
					return nil, err
				}
				if !ok || peeked.Code == 97 || peeked.Code == 0 {
					break
				}
				if _, _, err := it.next(); err != nil {
					return nil, err
				}
			}
		}
	}

	sourceCountPair, ok, err := it.peek()
	if err != nil {
		return nil, err
	}
	if ok && sourceCountPair.Code == 97 {
		if _, _, err := it.next(); err != nil {
			return nil, err
		}
		for n := int32(0); n < sourceCountPair.I32; n++ {
			hp, ok, err := it.next()
			if err != nil {
				return nil, err
			}
			if ok {
				if handle, err := hp.AsHandle(); err == nil {
					bp.SourceHandles = append(bp.SourceHandles, NewPointer(handle))
				}
			}
		}
	}
	return bp, nil
}

func (h *Hatch) WriteBody(ver Version, sink pairSink) error {
	pairs := []CodePair{
		DoublePair(30, h.Elevation[2]),
		StringPair(2, h.PatternName),
		ShortPair(70, boolToShort(h.IsSolidFill)),
		ShortPair(75, h.HatchStyle),
		ShortPair(76, h.PatternType),
	}
	if !h.IsSolidFill {
		pairs = append(pairs, DoublePair(52, h.PatternAngle), DoublePair(41, h.PatternScale))
	}
	pairs = append(pairs, IntPair(91, int32(len(h.BoundaryPaths))))
	if err := emitAll(sink, pairs); err != nil {
		return err
	}
	for _, bp := range h.BoundaryPaths {
		if err := sink.Emit(IntPair(92, int32(bp.Flags))); err != nil {
			return err
		}
		if bp.IsPolyline {
			if err := emitAll(sink, []CodePair{ShortPair(72, 0), ShortPair(73, boolToShort(bp.IsClosed)), IntPair(93, int32(len(bp.Edges)))}); err != nil {
				return err
			}
			for _, e := range bp.Edges {
				ep := []CodePair{DoublePair(10, e.Point[0]), DoublePair(20, e.Point[1])}
				if e.Bulge != 0 {
					ep = append(ep, DoublePair(42, e.Bulge))
				}
				if err := emitAll(sink, ep); err != nil {
					return err
				}
			}
		} else {
			if err := sink.Emit(IntPair(93, 0)); err != nil {
				return err
			}
		}
		if err := sink.Emit(IntPair(97, int32(len(bp.SourceHandles)))); err != nil {
			return err
		}
		for _, sh := range bp.SourceHandles {
			if err := sink.Emit(HandlePair(330, sh.Handle)); err != nil {
				return err
			}
		}
	}
	return emitAll(sink, h.RawPairs)
}

func boolToShort(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

func init() {
	registerEntity("HATCH", func() Entity { return &Hatch{} })
}
