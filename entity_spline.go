// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Spline is a NURBS curve entity. Knots (code 40), weights (code 41),
// control points (codes 10/20/30) and fit points (codes 11/21/31) are
// separate runs on the wire rather than interleaved per-point like
// LWPOLYLINE (§4.E "SPLINE knot/control interleaving" — the
// interleaving is across runs, not within one). Codes 72, 73 and 74
// carry the knot, control-point and fit-point counts; weights have no
// count field of their own.
type Spline struct {
	EntityData
	Flags              int16
	Degree             int16
	KnotCount          int32
	ControlPointCount  int32
	FitPointCount      int32
	Knots              []float64
	Weights            []float64
	ControlPoints      [][3]float64
	FitPoints          [][3]float64
	ExtrusionDirection [3]float64
}

func (s *Spline) TypeName() string    { return "SPLINE" }
func (s *Spline) Data() *EntityData   { return &s.EntityData }
func (s *Spline) MinVersion() Version { return VersionR13 }
func (s *Spline) MaxVersion() Version { return VersionR2018 }

func (s *Spline) ApplyPair(pair CodePair) (bool, error) { return false, nil }

// ReadBody keeps one cursor for the control point and one for the fit
// point being filled: a 10 (or 11) pair starts a new point and the
// following 20/30 (21/31) pairs fill its Y and Z. Knots and weights are
// appended as their 40 and 41 pairs arrive.
func (s *Spline) ReadBody(it *pairIterator, d *Drawing) error {
	var curCP *[3]float64
	var curFP *[3]float64
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
			s.ExtensionData = append(s.ExtensionData, ext)
		case 1001:
			xd, err := readXData(it, pair)
			if err != nil {
				return err
			}
			s.XData = append(s.XData, xd)
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				s.Handle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				s.Owner = NewPointer(h)
			}
		case 70:
			s.Flags = pair.I16
		case 71:
			s.Degree = pair.I16
		case 72:
			s.KnotCount = int32(pair.I16)
		case 73:
			s.ControlPointCount = int32(pair.I16)
		case 74:
			s.FitPointCount = int32(pair.I16)
		case 40:
			s.Knots = append(s.Knots, pair.F64)
		case 41:
			s.Weights = append(s.Weights, pair.F64)
		case 10:
			s.ControlPoints = append(s.ControlPoints, [3]float64{pair.F64, 0, 0})
			curCP = &s.ControlPoints[len(s.ControlPoints)-1]
		case 20:
			if curCP != nil {
				curCP[1] = pair.F64
			}
		case 30:
			if curCP != nil {
				curCP[2] = pair.F64
			}
		case 11:
			s.FitPoints = append(s.FitPoints, [3]float64{pair.F64, 0, 0})
			curFP = &s.FitPoints[len(s.FitPoints)-1]
		case 21:
			if curFP != nil {
				curFP[1] = pair.F64
			}
		case 31:
			if curFP != nil {
				curFP[2] = pair.F64
			}
		case 210:
			s.ExtrusionDirection[0] = pair.F64
		case 220:
			s.ExtrusionDirection[1] = pair.F64
		case 230:
			s.ExtrusionDirection[2] = pair.F64
		default:
			if !applyBaseEntityField(&s.EntityData, pair) {
				s.RawPairs = append(s.RawPairs, pair)
			}
		}
	}
}

func (s *Spline) WriteBody(ver Version, sink pairSink) error {
	pairs := []CodePair{
		ShortPair(70, s.Flags),
		ShortPair(71, s.Degree),
		ShortPair(72, int16(len(s.Knots))),
		ShortPair(73, int16(len(s.ControlPoints))),
		ShortPair(74, int16(len(s.FitPoints))),
	}
	if err := emitAll(sink, pairs); err != nil {
		return err
	}
	for _, k := range s.Knots {
		if err := sink.Emit(DoublePair(40, k)); err != nil {
			return err
		}
	}
	for _, w := range s.Weights {
		if err := sink.Emit(DoublePair(41, w)); err != nil {
			return err
		}
	}
	for _, cp := range s.ControlPoints {
		if err := emitAll(sink, []CodePair{DoublePair(10, cp[0]), DoublePair(20, cp[1]), DoublePair(30, cp[2])}); err != nil {
			return err
		}
	}
	for _, fp := range s.FitPoints {
		if err := emitAll(sink, []CodePair{DoublePair(11, fp[0]), DoublePair(21, fp[1]), DoublePair(31, fp[2])}); err != nil {
			return err
		}
	}
	return emitAll(sink, s.RawPairs)
}

func init() {
	registerEntity("SPLINE", func() Entity { return &Spline{} })
}
