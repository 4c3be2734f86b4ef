// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Layer is one LAYER table record.
type Layer struct {
	TableRecordData
	Color        Color
	Linetype     string
	LineweightVal Lineweight
	PlotStyle    Pointer
	Material     Pointer
	Off          bool
	Frozen       bool
	Locked       bool
}

func (l *Layer) TypeName() string    { return "LAYER" }
func (l *Layer) Data() *TableRecordData { return &l.TableRecordData }
func (l *Layer) MinVersion() Version { return VersionR10 }
func (l *Layer) MaxVersion() Version { return VersionR2018 }

func (l *Layer) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 62:
		raw := pair.I16
		l.Off = raw < 0
		if raw < 0 {
			raw = -raw
		}
		l.Color = ColorFromWire(raw)
	case 6:
		l.Linetype = pair.Str
	case 370:
		l.LineweightVal = LineweightFromWire(pair.I16)
	case 390:
		if h, err := pair.AsHandle(); err == nil {
			l.PlotStyle = NewPointer(h)
		}
	case 347:
		if h, err := pair.AsHandle(); err == nil {
			l.Material = NewPointer(h)
		}
	default:
		return false, nil
	}
	return true, nil
}

func (l *Layer) WritePairs(ver Version, sink pairSink) error {
	if err := writeBaseTableRecordFields(&l.TableRecordData, ver, sink, "AcDbLayerTableRecord"); err != nil {
		return err
	}
	colorWire := l.Color.ToWire()
	if l.Off {
		colorWire = -colorWire
	}
	pairs := []CodePair{
		ShortPair(62, colorWire),
		StringPair(6, l.Linetype),
	}
	if ver.IsAtLeast(VersionR13) {
		pairs = append(pairs, ShortPair(370, l.LineweightVal.ToWire()))
	}
	if l.PlotStyle.IsSet() {
		pairs = append(pairs, HandlePair(390, l.PlotStyle.Handle))
	}
	return emitAll(sink, pairs)
}

// LType is one LTYPE table record.
type LType struct {
	TableRecordData
	Description string
	PatternLength float64
	Elements    []float64
}

func (t *LType) TypeName() string    { return "LTYPE" }
func (t *LType) Data() *TableRecordData { return &t.TableRecordData }
func (t *LType) MinVersion() Version { return VersionR10 }
func (t *LType) MaxVersion() Version { return VersionR2018 }

func (t *LType) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 3:
		t.Description = pair.Str
	case 40:
		t.PatternLength = pair.F64
	case 49:
		t.Elements = append(t.Elements, pair.F64)
	case 72, 73:
		// Alignment code / dash count: derivable from Elements, ignored.
	default:
		return false, nil
	}
	return true, nil
}

func (t *LType) WritePairs(ver Version, sink pairSink) error {
	if err := writeBaseTableRecordFields(&t.TableRecordData, ver, sink, "AcDbLinetypeTableRecord"); err != nil {
		return err
	}
	pairs := []CodePair{
		StringPair(3, t.Description),
		ShortPair(72, 65),
		ShortPair(73, int16(len(t.Elements))),
		DoublePair(40, t.PatternLength),
	}
	for _, e := range t.Elements {
		pairs = append(pairs, DoublePair(49, e))
	}
	return emitAll(sink, pairs)
}

// Style is one STYLE (text style) table record.
type Style struct {
	TableRecordData
	FixedHeight   float64
	WidthFactor   float64
	ObliqueAngle  float64
	FontFile      string
	BigFontFile   string
}

func (s *Style) TypeName() string    { return "STYLE" }
func (s *Style) Data() *TableRecordData { return &s.TableRecordData }
func (s *Style) MinVersion() Version { return VersionR10 }
func (s *Style) MaxVersion() Version { return VersionR2018 }

func (s *Style) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 40:
		s.FixedHeight = pair.F64
	case 41:
		s.WidthFactor = pair.F64
	case 50:
		s.ObliqueAngle = pair.F64
	case 3:
		s.FontFile = pair.Str
	case 4:
		s.BigFontFile = pair.Str
	default:
		return false, nil
	}
	return true, nil
}

func (s *Style) WritePairs(ver Version, sink pairSink) error {
	if err := writeBaseTableRecordFields(&s.TableRecordData, ver, sink, "AcDbTextStyleTableRecord"); err != nil {
		return err
	}
	return emitAll(sink, []CodePair{
		DoublePair(40, s.FixedHeight),
		DoublePair(41, s.WidthFactor),
		DoublePair(50, s.ObliqueAngle),
		StringPair(3, s.FontFile),
		StringPair(4, s.BigFontFile),
	})
}

// View is one VIEW table record.
type View struct {
	TableRecordData
	Height float64
	Width  float64
	Center [2]float64
}

func (v *View) TypeName() string    { return "VIEW" }
func (v *View) Data() *TableRecordData { return &v.TableRecordData }
func (v *View) MinVersion() Version { return VersionR10 }
func (v *View) MaxVersion() Version { return VersionR2018 }

func (v *View) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 40:
		v.Height = pair.F64
	case 41:
		v.Width = pair.F64
	case 10:
		v.Center[0] = pair.F64
	case 20:
		v.Center[1] = pair.F64
	default:
		return false, nil
	}
	return true, nil
}

func (v *View) WritePairs(ver Version, sink pairSink) error {
	if err := writeBaseTableRecordFields(&v.TableRecordData, ver, sink, "AcDbViewTableRecord"); err != nil {
		return err
	}
	return emitAll(sink, []CodePair{
		DoublePair(40, v.Height),
		DoublePair(10, v.Center[0]), DoublePair(20, v.Center[1]),
		DoublePair(41, v.Width),
	})
}

// UCS is one UCS table record.
type UCS struct {
	TableRecordData
	Origin [3]float64
	XAxis  [3]float64
	YAxis  [3]float64
}

func (u *UCS) TypeName() string    { return "UCS" }
func (u *UCS) Data() *TableRecordData { return &u.TableRecordData }
func (u *UCS) MinVersion() Version { return VersionR11 }
func (u *UCS) MaxVersion() Version { return VersionR2018 }

func (u *UCS) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 10:
		u.Origin[0] = pair.F64
	case 20:
		u.Origin[1] = pair.F64
	case 30:
		u.Origin[2] = pair.F64
	case 11:
		u.XAxis[0] = pair.F64
	case 21:
		u.XAxis[1] = pair.F64
	case 31:
		u.XAxis[2] = pair.F64
	case 12:
		u.YAxis[0] = pair.F64
	case 22:
		u.YAxis[1] = pair.F64
	case 32:
		u.YAxis[2] = pair.F64
	default:
		return false, nil
	}
	return true, nil
}

func (u *UCS) WritePairs(ver Version, sink pairSink) error {
	if err := writeBaseTableRecordFields(&u.TableRecordData, ver, sink, "AcDbUCSTableRecord"); err != nil {
		return err
	}
	return emitAll(sink, []CodePair{
		DoublePair(10, u.Origin[0]), DoublePair(20, u.Origin[1]), DoublePair(30, u.Origin[2]),
		DoublePair(11, u.XAxis[0]), DoublePair(21, u.XAxis[1]), DoublePair(31, u.XAxis[2]),
		DoublePair(12, u.YAxis[0]), DoublePair(22, u.YAxis[1]), DoublePair(32, u.YAxis[2]),
	})
}

// VPort is one VPORT table record.
type VPort struct {
	TableRecordData
	LowerLeft  [2]float64
	UpperRight [2]float64
	Center     [2]float64
	Height     float64
	AspectRatio float64
}

func (v *VPort) TypeName() string    { return "VPORT" }
func (v *VPort) Data() *TableRecordData { return &v.TableRecordData }
func (v *VPort) MinVersion() Version { return VersionR10 }
func (v *VPort) MaxVersion() Version { return VersionR2018 }

func (v *VPort) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 10:
		v.LowerLeft[0] = pair.F64
	case 20:
		v.LowerLeft[1] = pair.F64
	case 11:
		v.UpperRight[0] = pair.F64
	case 21:
		v.UpperRight[1] = pair.F64
	case 12:
		v.Center[0] = pair.F64
	case 22:
		v.Center[1] = pair.F64
	case 40:
		v.Height = pair.F64
	case 41:
		v.AspectRatio = pair.F64
	default:
		return false, nil
	}
	return true, nil
}

func (v *VPort) WritePairs(ver Version, sink pairSink) error {
	if err := writeBaseTableRecordFields(&v.TableRecordData, ver, sink, "AcDbViewportTableRecord"); err != nil {
		return err
	}
	return emitAll(sink, []CodePair{
		DoublePair(10, v.LowerLeft[0]), DoublePair(20, v.LowerLeft[1]),
		DoublePair(11, v.UpperRight[0]), DoublePair(21, v.UpperRight[1]),
		DoublePair(12, v.Center[0]), DoublePair(22, v.Center[1]),
		DoublePair(40, v.Height),
		DoublePair(41, v.AspectRatio),
	})
}

// DimStyleRecord is one DIMSTYLE table record (distinct from the
// $DIMSTYLE header variable, which just names the current one).
type DimStyleRecord struct {
	TableRecordData
	TextHeight    float64
	ArrowSize     float64
	TextStyle     string
}

func (d *DimStyleRecord) TypeName() string    { return "DIMSTYLE" }
func (d *DimStyleRecord) Data() *TableRecordData { return &d.TableRecordData }
func (d *DimStyleRecord) MinVersion() Version { return VersionR13 }
func (d *DimStyleRecord) MaxVersion() Version { return VersionR2018 }

func (d *DimStyleRecord) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 140:
		d.TextHeight = pair.F64
	case 41:
		d.ArrowSize = pair.F64
	case 3:
		d.TextStyle = pair.Str
	default:
		return false, nil
	}
	return true, nil
}

func (d *DimStyleRecord) WritePairs(ver Version, sink pairSink) error {
	if err := writeBaseTableRecordFields(&d.TableRecordData, ver, sink, "AcDbDimStyleTableRecord"); err != nil {
		return err
	}
	return emitAll(sink, []CodePair{
		DoublePair(140, d.TextHeight),
		DoublePair(41, d.ArrowSize),
		StringPair(3, d.TextStyle),
	})
}

// BlockRecord is one BLOCK_RECORD table record, the handle-bearing
// counterpart to a Block's BLOCK/ENDBLK pairing (§3, block/layout
// linkage).
type BlockRecord struct {
	TableRecordData
	LayoutHandle Pointer
}

func (b *BlockRecord) TypeName() string    { return "BLOCK_RECORD" }
func (b *BlockRecord) Data() *TableRecordData { return &b.TableRecordData }
func (b *BlockRecord) MinVersion() Version { return VersionR13 }
func (b *BlockRecord) MaxVersion() Version { return VersionR2018 }

func (b *BlockRecord) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 340:
		if h, err := pair.AsHandle(); err == nil {
			b.LayoutHandle = NewPointer(h)
		}
	default:
		return false, nil
	}
	return true, nil
}

func (b *BlockRecord) WritePairs(ver Version, sink pairSink) error {
	if err := writeBaseTableRecordFields(&b.TableRecordData, ver, sink, "AcDbBlockTableRecord"); err != nil {
		return err
	}
	if b.LayoutHandle.IsSet() {
		return sink.Emit(HandlePair(340, b.LayoutHandle.Handle))
	}
	return nil
}

// AppID is one APPID table record (an application name registered for
// XDATA, §3 XDATA).
type AppID struct {
	TableRecordData
}

func (a *AppID) TypeName() string    { return "APPID" }
func (a *AppID) Data() *TableRecordData { return &a.TableRecordData }
func (a *AppID) MinVersion() Version { return VersionR10 }
func (a *AppID) MaxVersion() Version { return VersionR2018 }

func (a *AppID) ApplyPair(pair CodePair) (bool, error) { return false, nil }

func (a *AppID) WritePairs(ver Version, sink pairSink) error {
	return writeBaseTableRecordFields(&a.TableRecordData, ver, sink, "AcDbRegAppTableRecord")
}

func init() {
	registerTableRecord("LAYER", func() TableRecord { return &Layer{} })
	registerTableRecord("LTYPE", func() TableRecord { return &LType{} })
	registerTableRecord("STYLE", func() TableRecord { return &Style{} })
	registerTableRecord("VIEW", func() TableRecord { return &View{} })
	registerTableRecord("UCS", func() TableRecord { return &UCS{} })
	registerTableRecord("VPORT", func() TableRecord { return &VPort{} })
	registerTableRecord("DIMSTYLE", func() TableRecord { return &DimStyleRecord{} })
	registerTableRecord("BLOCK_RECORD", func() TableRecord { return &BlockRecord{} })
	registerTableRecord("APPID", func() TableRecord { return &AppID{} })
}
