// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Vertex is one VERTEX entity belonging to a Polyline. VERTEX is
// never registered as a top-level factory: it only ever appears as a
// POLYLINE successor, consumed directly by Polyline.ReadBody (§4.E
// "POLYLINE successor vertices terminated by SEQEND").
type Vertex struct {
	EntityData
	Location [3]float64
	Bulge    float64
	Flags    int16
}

// Polyline is a heavyweight POLYLINE entity. Its vertices are
// themselves independent (0, "VERTEX") entities on the wire, read one
// at a time until a (0, "SEQEND") closes the run (§4.E, §4.F).
type Polyline struct {
	EntityData
	Flags              int16
	DefaultStartWidth  float64
	DefaultEndWidth    float64
	Elevation          [3]float64
	Thickness          float64
	ExtrusionDirection [3]float64
	Vertices           []*Vertex
	SeqendHandle       Handle
	SeqendOwner        Pointer
}

func (p *Polyline) TypeName() string    { return "POLYLINE" }
func (p *Polyline) Data() *EntityData   { return &p.EntityData }
func (p *Polyline) MinVersion() Version { return VersionR10 }
func (p *Polyline) MaxVersion() Version { return VersionR2018 }

func (p *Polyline) ApplyPair(pair CodePair) (bool, error) { return false, nil }

// ReadBody reads POLYLINE's own fields, then every successor VERTEX
// entity, then the terminating SEQEND (§4.E state machine: "on code 0
// == SEQEND attach to pending owner, pop").
func (p *Polyline) ReadBody(it *pairIterator, d *Drawing) error {
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if peeked.Code == 0 {
			break
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
		case 70:
			p.Flags = pair.I16
		case 40:
			p.DefaultStartWidth = pair.F64
		case 41:
			p.DefaultEndWidth = pair.F64
		case 30:
			p.Elevation[2] = pair.F64
		case 39:
			p.Thickness = pair.F64
		case 210:
			p.ExtrusionDirection[0] = pair.F64
		case 220:
			p.ExtrusionDirection[1] = pair.F64
		case 230:
			p.ExtrusionDirection[2] = pair.F64
		default:
			if !applyBaseEntityField(&p.EntityData, pair) {
				p.RawPairs = append(p.RawPairs, pair)
			}
		}
	}

	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || peeked.Code != 0 {
			return nil
		}
		if peeked.Str == "SEQEND" {
			seqend, _, err := it.next()
			_ = seqend
			if err != nil {
				return err
			}
			return p.readSeqend(it)
		}
		if peeked.Str != "VERTEX" {
			// Malformed file: missing SEQEND. Tolerated per §4.E.
			return nil
		}
		if _, _, err := it.next(); err != nil {
			return err
		}
		v, err := readVertexBody(it)
		if err != nil {
			return err
		}
		p.Vertices = append(p.Vertices, v)
	}
}

func readVertexBody(it *pairIterator) (*Vertex, error) {
	v := &Vertex{}
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return nil, err
		}
		if !ok || peeked.Code == 0 {
			return v, nil
		}
		pair, _, err := it.next()
		if err != nil {
			return nil, err
		}
		switch pair.Code {
		case 10:
			v.Location[0] = pair.F64
		case 20:
			v.Location[1] = pair.F64
		case 30:
			v.Location[2] = pair.F64
		case 42:
			v.Bulge = pair.F64
		case 70:
			v.Flags = pair.I16
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				v.Handle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				v.Owner = NewPointer(h)
			}
		default:
			if !applyBaseEntityField(&v.EntityData, pair) {
				v.RawPairs = append(v.RawPairs, pair)
			}
		}
	}
}

func (p *Polyline) readSeqend(it *pairIterator) error {
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
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				p.SeqendHandle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				p.SeqendOwner = NewPointer(h)
			}
		}
	}
}

// WriteBody emits POLYLINE's own fields, then each VERTEX entity,
// then SEQEND (§4.E Write protocol, custom writers mirror custom
// readers).
func (p *Polyline) WriteBody(ver Version, sink pairSink) error {
	pairs := []CodePair{ShortPair(70, p.Flags)}
	if p.DefaultStartWidth != 0 || p.DefaultEndWidth != 0 {
		pairs = append(pairs, DoublePair(40, p.DefaultStartWidth), DoublePair(41, p.DefaultEndWidth))
	}
	pairs = append(pairs, DoublePair(30, p.Elevation[2]))
	if p.Thickness != 0 {
		pairs = append(pairs, DoublePair(39, p.Thickness))
	}
	if err := emitAll(sink, pairs); err != nil {
		return err
	}
	if err := emitAll(sink, p.RawPairs); err != nil {
		return err
	}
	for _, v := range p.Vertices {
		if err := sink.Emit(StringPair(0, "VERTEX")); err != nil {
			return err
		}
		if v.Handle != NoHandle {
			if err := sink.Emit(HandlePair(5, v.Handle)); err != nil {
				return err
			}
		}
		if v.Owner.IsSet() {
			if err := sink.Emit(HandlePair(330, v.Owner.Handle)); err != nil {
				return err
			}
		}
		vp := []CodePair{
			DoublePair(10, v.Location[0]), DoublePair(20, v.Location[1]), DoublePair(30, v.Location[2]),
		}
		if v.Bulge != 0 {
			vp = append(vp, DoublePair(42, v.Bulge))
		}
		vp = append(vp, ShortPair(70, v.Flags))
		if err := emitAll(sink, vp); err != nil {
			return err
		}
	}
	if err := sink.Emit(StringPair(0, "SEQEND")); err != nil {
		return err
	}
	if p.SeqendHandle != NoHandle {
		if err := sink.Emit(HandlePair(5, p.SeqendHandle)); err != nil {
			return err
		}
	}
	if p.SeqendOwner.IsSet() {
		return sink.Emit(HandlePair(330, p.SeqendOwner.Handle))
	}
	return nil
}

func init() {
	registerEntity("POLYLINE", func() Entity { return &Polyline{} })
}
