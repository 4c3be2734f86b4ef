// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// LWPolylineVertex is one vertex of an LWPOLYLINE. Codes 10/20 open a
// new vertex; 40, 41 and 42 belong to whichever vertex most recently
// opened (§4.E "LWPOLYLINE vertex interleaving").
type LWPolylineVertex struct {
	X, Y       float64
	StartWidth float64
	EndWidth   float64
	Bulge      float64
}

// LWPolyline is a lightweight polyline entity (R14+), the simplest of
// the format's three interleaved-vertex shapes.
type LWPolyline struct {
	EntityData
	Flags              int16
	ConstantWidth      float64
	Elevation          float64
	Thickness          float64
	ExtrusionDirection [3]float64
	Vertices           []LWPolylineVertex
}

func (p *LWPolyline) TypeName() string    { return "LWPOLYLINE" }
func (p *LWPolyline) Data() *EntityData   { return &p.EntityData }
func (p *LWPolyline) MinVersion() Version { return VersionR14 }
func (p *LWPolyline) MaxVersion() Version { return VersionR2018 }

// ApplyPair is never called: LWPolyline implements customBodyReader.
func (p *LWPolyline) ApplyPair(pair CodePair) (bool, error) { return false, nil }

// ReadBody implements customBodyReader. 90 gives the vertex count (a
// hint only, since the reader is driven by the actual 10/20 pairs
// seen); 10/20 opens a new vertex, 40/41/42 amend the current one.
func (p *LWPolyline) ReadBody(it *pairIterator, d *Drawing) error {
	var cur *LWPolylineVertex
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
			p.ExtensionData = append(p.ExtensionData, ext)
		case 1001:
			xd, err := readXData(it, pair)
			if err != nil {
				return err
			}
			p.XData = append(p.XData, xd)
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				p.Handle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				p.Owner = NewPointer(h)
			}
		case 10:
			p.Vertices = append(p.Vertices, LWPolylineVertex{X: pair.F64})
			cur = &p.Vertices[len(p.Vertices)-1]
		case 20:
			if cur != nil {
				cur.Y = pair.F64
			}
		case 40:
			if cur != nil {
				cur.StartWidth = pair.F64
			}
		case 41:
			if cur != nil {
				cur.EndWidth = pair.F64
			}
		case 42:
			if cur != nil {
				cur.Bulge = pair.F64
			}
		case 70:
			p.Flags = pair.I16
		case 43:
			p.ConstantWidth = pair.F64
		case 38:
			p.Elevation = pair.F64
		case 39:
			p.Thickness = pair.F64
		case 210:
			p.ExtrusionDirection[0] = pair.F64
		case 220:
			p.ExtrusionDirection[1] = pair.F64
		case 230:
			p.ExtrusionDirection[2] = pair.F64
		case 90:
			// Vertex count hint; the reader trusts the 10/20 pairs
			// actually present instead.
		default:
			if !applyBaseEntityField(&p.EntityData, pair) {
				p.RawPairs = append(p.RawPairs, pair)
			}
		}
	}
}

// WriteBody implements customBodyWriter, re-interleaving each
// vertex's optional codes immediately after its 10/20 pair.
func (p *LWPolyline) WriteBody(ver Version, sink pairSink) error {
	pairs := []CodePair{
		ShortPair(70, p.Flags),
		IntPair(90, int32(len(p.Vertices))),
	}
	if p.ConstantWidth != 0 {
		pairs = append(pairs, DoublePair(43, p.ConstantWidth))
	}
	if p.Elevation != 0 {
		pairs = append(pairs, DoublePair(38, p.Elevation))
	}
	if p.Thickness != 0 {
		pairs = append(pairs, DoublePair(39, p.Thickness))
	}
	for _, v := range p.Vertices {
		pairs = append(pairs, DoublePair(10, v.X), DoublePair(20, v.Y))
		if v.StartWidth != 0 || v.EndWidth != 0 {
			pairs = append(pairs, DoublePair(40, v.StartWidth), DoublePair(41, v.EndWidth))
		}
		if v.Bulge != 0 {
			pairs = append(pairs, DoublePair(42, v.Bulge))
		}
	}
	if err := emitAll(sink, pairs); err != nil {
		return err
	}
	return emitAll(sink, p.RawPairs)
}

func init() {
	registerEntity("LWPOLYLINE", func() Entity { return &LWPolyline{} })
}
