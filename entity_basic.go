// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// This file implements the entity variants whose field tables are
// flat: every code maps to exactly one field, with no custom
// interleaving rule (§4.E). Each follows the same shape: embed
// EntityData, answer the four Entity methods, and register a factory
// in init().

// Point is a POINT entity (§3 Entity/Object, §4.E).
type Point struct {
	EntityData
	Location           [3]float64
	Thickness          float64
	ExtrusionDirection [3]float64
	Angle              float64
}

func (p *Point) TypeName() string    { return "POINT" }
func (p *Point) Data() *EntityData   { return &p.EntityData }
func (p *Point) MinVersion() Version { return VersionR10 }
func (p *Point) MaxVersion() Version { return VersionR2018 }

func (p *Point) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 10:
		p.Location[0] = pair.F64
	case 20:
		p.Location[1] = pair.F64
	case 30:
		p.Location[2] = pair.F64
	case 39:
		p.Thickness = pair.F64
	case 50:
		p.Angle = pair.F64
	case 210:
		p.ExtrusionDirection[0] = pair.F64
	case 220:
		p.ExtrusionDirection[1] = pair.F64
	case 230:
		p.ExtrusionDirection[2] = pair.F64
	default:
		return false, nil
	}
	return true, nil
}

func (p *Point) WritePairs(ver Version, sink pairSink) error {
	pairs := append([]CodePair{}, DoublePair(10, p.Location[0]), DoublePair(20, p.Location[1]), DoublePair(30, p.Location[2]))
	if p.Thickness != 0 {
		pairs = append(pairs, DoublePair(39, p.Thickness))
	}
	if p.Angle != 0 {
		pairs = append(pairs, DoublePair(50, p.Angle))
	}
	return emitAll(sink, pairs)
}

// Line is a LINE entity, the format's boundary-scenario entity (§8).
type Line struct {
	EntityData
	Start              [3]float64
	End                [3]float64
	Thickness          float64
	ExtrusionDirection [3]float64
}

func (l *Line) TypeName() string    { return "LINE" }
func (l *Line) Data() *EntityData   { return &l.EntityData }
func (l *Line) MinVersion() Version { return VersionR10 }
func (l *Line) MaxVersion() Version { return VersionR2018 }

func (l *Line) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 10:
		l.Start[0] = pair.F64
	case 20:
		l.Start[1] = pair.F64
	case 30:
		l.Start[2] = pair.F64
	case 11:
		l.End[0] = pair.F64
	case 21:
		l.End[1] = pair.F64
	case 31:
		l.End[2] = pair.F64
	case 39:
		l.Thickness = pair.F64
	case 210:
		l.ExtrusionDirection[0] = pair.F64
	case 220:
		l.ExtrusionDirection[1] = pair.F64
	case 230:
		l.ExtrusionDirection[2] = pair.F64
	default:
		return false, nil
	}
	return true, nil
}

func (l *Line) WritePairs(ver Version, sink pairSink) error {
	pairs := []CodePair{
		DoublePair(10, l.Start[0]), DoublePair(20, l.Start[1]), DoublePair(30, l.Start[2]),
		DoublePair(11, l.End[0]), DoublePair(21, l.End[1]), DoublePair(31, l.End[2]),
	}
	if l.Thickness != 0 {
		pairs = append(pairs, DoublePair(39, l.Thickness))
	}
	return emitAll(sink, pairs)
}

// Circle is a CIRCLE entity.
type Circle struct {
	EntityData
	Center             [3]float64
	Radius             float64
	Thickness          float64
	ExtrusionDirection [3]float64
}

func (c *Circle) TypeName() string    { return "CIRCLE" }
func (c *Circle) Data() *EntityData   { return &c.EntityData }
func (c *Circle) MinVersion() Version { return VersionR10 }
func (c *Circle) MaxVersion() Version { return VersionR2018 }

func (c *Circle) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 10:
		c.Center[0] = pair.F64
	case 20:
		c.Center[1] = pair.F64
	case 30:
		c.Center[2] = pair.F64
	case 40:
		c.Radius = pair.F64
	case 39:
		c.Thickness = pair.F64
	default:
		return false, nil
	}
	return true, nil
}

func (c *Circle) WritePairs(ver Version, sink pairSink) error {
	pairs := []CodePair{
		DoublePair(10, c.Center[0]), DoublePair(20, c.Center[1]), DoublePair(30, c.Center[2]),
		DoublePair(40, c.Radius),
	}
	if c.Thickness != 0 {
		pairs = append(pairs, DoublePair(39, c.Thickness))
	}
	return emitAll(sink, pairs)
}

// Arc is an ARC entity: a CIRCLE with a start/end angle.
type Arc struct {
	Circle
	StartAngle float64
	EndAngle   float64
}

func (a *Arc) TypeName() string { return "ARC" }

func (a *Arc) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 50:
		a.StartAngle = pair.F64
	case 51:
		a.EndAngle = pair.F64
	default:
		return a.Circle.ApplyPair(pair)
	}
	return true, nil
}

func (a *Arc) WritePairs(ver Version, sink pairSink) error {
	if err := a.Circle.WritePairs(ver, sink); err != nil {
		return err
	}
	return emitAll(sink, []CodePair{DoublePair(50, a.StartAngle), DoublePair(51, a.EndAngle)})
}

// Ellipse is an ELLIPSE entity (R14+).
type Ellipse struct {
	EntityData
	Center        [3]float64
	MajorAxisEnd  [3]float64
	Ratio         float64
	StartParam    float64
	EndParam      float64
}

func (e *Ellipse) TypeName() string    { return "ELLIPSE" }
func (e *Ellipse) Data() *EntityData   { return &e.EntityData }
func (e *Ellipse) MinVersion() Version { return VersionR14 }
func (e *Ellipse) MaxVersion() Version { return VersionR2018 }

func (e *Ellipse) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 10:
		e.Center[0] = pair.F64
	case 20:
		e.Center[1] = pair.F64
	case 30:
		e.Center[2] = pair.F64
	case 11:
		e.MajorAxisEnd[0] = pair.F64
	case 21:
		e.MajorAxisEnd[1] = pair.F64
	case 31:
		e.MajorAxisEnd[2] = pair.F64
	case 40:
		e.Ratio = pair.F64
	case 41:
		e.StartParam = pair.F64
	case 42:
		e.EndParam = pair.F64
	default:
		return false, nil
	}
	return true, nil
}

func (e *Ellipse) WritePairs(ver Version, sink pairSink) error {
	return emitAll(sink, []CodePair{
		DoublePair(10, e.Center[0]), DoublePair(20, e.Center[1]), DoublePair(30, e.Center[2]),
		DoublePair(11, e.MajorAxisEnd[0]), DoublePair(21, e.MajorAxisEnd[1]), DoublePair(31, e.MajorAxisEnd[2]),
		DoublePair(40, e.Ratio), DoublePair(41, e.StartParam), DoublePair(42, e.EndParam),
	})
}

// Text is a TEXT entity.
type Text struct {
	EntityData
	InsertionPoint [3]float64
	Height         float64
	Value          string
	Rotation       float64
	Style          string
	HJustify       HorizontalTextJustification
}

func (t *Text) TypeName() string    { return "TEXT" }
func (t *Text) Data() *EntityData   { return &t.EntityData }
func (t *Text) MinVersion() Version { return VersionR10 }
func (t *Text) MaxVersion() Version { return VersionR2018 }

func (t *Text) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 10:
		t.InsertionPoint[0] = pair.F64
	case 20:
		t.InsertionPoint[1] = pair.F64
	case 30:
		t.InsertionPoint[2] = pair.F64
	case 40:
		t.Height = pair.F64
	case 1:
		t.Value = pair.Str
	case 50:
		t.Rotation = pair.F64
	case 7:
		t.Style = pair.Str
	case 72:
		t.HJustify = HorizontalTextJustificationFromWire(pair.I16)
	default:
		return false, nil
	}
	return true, nil
}

func (t *Text) WritePairs(ver Version, sink pairSink) error {
	pairs := []CodePair{
		DoublePair(10, t.InsertionPoint[0]), DoublePair(20, t.InsertionPoint[1]), DoublePair(30, t.InsertionPoint[2]),
		DoublePair(40, t.Height), StringPair(1, t.Value),
	}
	if t.Rotation != 0 {
		pairs = append(pairs, DoublePair(50, t.Rotation))
	}
	if t.Style != "" {
		pairs = append(pairs, StringPair(7, t.Style))
	}
	if t.HJustify != HJustLeft {
		pairs = append(pairs, ShortPair(72, int16(t.HJustify)))
	}
	return emitAll(sink, pairs)
}

// Solid is a SOLID (filled quadrilateral) entity.
type Solid struct {
	EntityData
	Points [4][3]float64
}

func (s *Solid) TypeName() string    { return "SOLID" }
func (s *Solid) Data() *EntityData   { return &s.EntityData }
func (s *Solid) MinVersion() Version { return VersionR10 }
func (s *Solid) MaxVersion() Version { return VersionR2018 }

func (s *Solid) ApplyPair(pair CodePair) (bool, error) {
	idx := -1
	axis := -1
	switch pair.Code {
	case 10, 20, 30:
		idx, axis = 0, pair.Code/10-1
	case 11, 21, 31:
		idx, axis = 1, pair.Code/10-1
	case 12, 22, 32:
		idx, axis = 2, pair.Code/10-1
	case 13, 23, 33:
		idx, axis = 3, pair.Code/10-1
	default:
		return false, nil
	}
	s.Points[idx][axis] = pair.F64
	return true, nil
}

func (s *Solid) WritePairs(ver Version, sink pairSink) error {
	var pairs []CodePair
	for i, pt := range s.Points {
		base := 10 + i
		pairs = append(pairs, DoublePair(base, pt[0]), DoublePair(base+10, pt[1]), DoublePair(base+20, pt[2]))
	}
	return emitAll(sink, pairs)
}

// Face3D is a 3DFACE entity.
type Face3D struct {
	EntityData
	Points        [4][3]float64
	InvisibleFlags int16
}

func (f *Face3D) TypeName() string    { return "3DFACE" }
func (f *Face3D) Data() *EntityData   { return &f.EntityData }
func (f *Face3D) MinVersion() Version { return VersionR10 }
func (f *Face3D) MaxVersion() Version { return VersionR2018 }

func (f *Face3D) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 10, 20, 30:
		f.Points[0][pair.Code/10-1] = pair.F64
	case 11, 21, 31:
		f.Points[1][pair.Code/10-1] = pair.F64
	case 12, 22, 32:
		f.Points[2][pair.Code/10-1] = pair.F64
	case 13, 23, 33:
		f.Points[3][pair.Code/10-1] = pair.F64
	case 70:
		f.InvisibleFlags = pair.I16
	default:
		return false, nil
	}
	return true, nil
}

func (f *Face3D) WritePairs(ver Version, sink pairSink) error {
	var pairs []CodePair
	for i, pt := range f.Points {
		base := 10 + i
		pairs = append(pairs, DoublePair(base, pt[0]), DoublePair(base+10, pt[1]), DoublePair(base+20, pt[2]))
	}
	if f.InvisibleFlags != 0 {
		pairs = append(pairs, ShortPair(70, f.InvisibleFlags))
	}
	return emitAll(sink, pairs)
}

func emitAll(sink pairSink, pairs []CodePair) error {
	for _, p := range pairs {
		if err := sink.Emit(p); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	registerEntity("POINT", func() Entity { return &Point{} })
	registerEntity("LINE", func() Entity { return &Line{} })
	registerEntity("CIRCLE", func() Entity { return &Circle{} })
	registerEntity("ARC", func() Entity { return &Arc{} })
	registerEntity("ELLIPSE", func() Entity { return &Ellipse{} })
	registerEntity("TEXT", func() Entity { return &Text{} })
	registerEntity("SOLID", func() Entity { return &Solid{} })
	registerEntity("3DFACE", func() Entity { return &Face3D{} })
}
