// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// DictionaryEntry is one (name, handle) pair inside a DICTIONARY.
type DictionaryEntry struct {
	Name   string
	Handle Handle
	Target Pointer
}

// Dictionary maps names to object handles. Its entries are a repeated
// (3, name) followed by (350, handle) pair, which a flat field table
// cannot express since the two codes must be correlated positionally
// rather than by code identity alone.
type Dictionary struct {
	ObjectData
	HardOwned bool
	Entries   []DictionaryEntry
}

func (dict *Dictionary) TypeName() string    { return "DICTIONARY" }
func (dict *Dictionary) Data() *ObjectData   { return &dict.ObjectData }
func (dict *Dictionary) MinVersion() Version { return VersionR13 }
func (dict *Dictionary) MaxVersion() Version { return VersionR2018 }

func (dict *Dictionary) ApplyPair(pair CodePair) (bool, error) { return false, nil }

func (dict *Dictionary) ReadObjectBody(it *pairIterator, d *Drawing) error {
	var pendingName string
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
			dict.ExtensionData = append(dict.ExtensionData, ext)
		case 1001:
			xd, err := readXData(it, pair)
			if err != nil {
				return err
			}
			dict.XData = append(dict.XData, xd)
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				dict.Handle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				dict.Owner = NewPointer(h)
			}
		case 280:
			dict.HardOwned = pair.I16 != 0
		case 3:
			pendingName = pair.Str
		case 350, 360:
			h, err := pair.AsHandle()
			if err != nil {
				continue
			}
			dict.Entries = append(dict.Entries, DictionaryEntry{
				Name:   pendingName,
				Handle: h,
				Target: NewPointer(h),
			})
			pendingName = ""
		default:
			if !applyBaseObjectField(&dict.ObjectData, pair) {
				dict.RawPairs = append(dict.RawPairs, pair)
			}
		}
	}
}

func (dict *Dictionary) WriteObjectBody(ver Version, sink pairSink) error {
	// writeObject has already emitted Handle and Owner; only the
	// subclass marker and this variant's own fields remain.
	if err := sink.Emit(StringPair(100, "AcDbDictionary")); err != nil {
		return err
	}
	if err := sink.Emit(ShortPair(280, boolToShort(dict.HardOwned))); err != nil {
		return err
	}
	for _, e := range dict.Entries {
		if err := sink.Emit(StringPair(3, e.Name)); err != nil {
			return err
		}
		if err := sink.Emit(HandlePair(350, e.Handle)); err != nil {
			return err
		}
	}
	return nil
}

// XRecord stores an arbitrary run of application-defined code pairs
// (code 1-369 range, excluding the common record) whose meaning is
// opaque to this library: it round-trips them verbatim.
type XRecord struct {
	ObjectData
	CloningFlag int16
	Pairs       []CodePair
}

func (x *XRecord) TypeName() string    { return "XRECORD" }
func (x *XRecord) Data() *ObjectData   { return &x.ObjectData }
func (x *XRecord) MinVersion() Version { return VersionR13 }
func (x *XRecord) MaxVersion() Version { return VersionR2018 }

func (x *XRecord) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 280:
		x.CloningFlag = pair.I16
	case 100:
		return false, nil
	default:
		x.Pairs = append(x.Pairs, pair)
	}
	return true, nil
}

func (x *XRecord) WritePairs(ver Version, sink pairSink) error {
	if err := sink.Emit(ShortPair(280, x.CloningFlag)); err != nil {
		return err
	}
	return emitAll(sink, x.Pairs)
}

// Group is a named, possibly-selectable collection of entity handles.
type Group struct {
	ObjectData
	Description string
	Unnamed     bool
	Selectable  bool
	Handles     []Handle
}

func (g *Group) TypeName() string    { return "GROUP" }
func (g *Group) Data() *ObjectData   { return &g.ObjectData }
func (g *Group) MinVersion() Version { return VersionR13 }
func (g *Group) MaxVersion() Version { return VersionR2018 }

func (g *Group) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 300:
		g.Description = pair.Str
	case 70:
		g.Unnamed = pair.I16 != 0
	case 71:
		g.Selectable = pair.I16 != 0
	case 340:
		if h, err := pair.AsHandle(); err == nil {
			g.Handles = append(g.Handles, h)
		}
	default:
		return false, nil
	}
	return true, nil
}

func (g *Group) WritePairs(ver Version, sink pairSink) error {
	pairs := []CodePair{
		StringPair(300, g.Description),
		ShortPair(70, boolToShort(g.Unnamed)),
		ShortPair(71, boolToShort(g.Selectable)),
	}
	for _, h := range g.Handles {
		pairs = append(pairs, HandlePair(340, h))
	}
	return emitAll(sink, pairs)
}

// Layout associates a paper-space block with printable-area settings.
type Layout struct {
	ObjectData
	Name         string
	TabOrder     int32
	BlockHandle  Pointer
	MinLimits    [2]float64
	MaxLimits    [2]float64
}

func (l *Layout) TypeName() string    { return "LAYOUT" }
func (l *Layout) Data() *ObjectData   { return &l.ObjectData }
func (l *Layout) MinVersion() Version { return VersionR2000 }
func (l *Layout) MaxVersion() Version { return VersionR2018 }

func (l *Layout) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 1:
		l.Name = pair.Str
	case 71:
		l.TabOrder = int32(pair.I16)
	case 330:
		if h, err := pair.AsHandle(); err == nil {
			l.BlockHandle = NewPointer(h)
		}
	case 10:
		l.MinLimits[0] = pair.F64
	case 20:
		l.MinLimits[1] = pair.F64
	case 11:
		l.MaxLimits[0] = pair.F64
	case 21:
		l.MaxLimits[1] = pair.F64
	default:
		return false, nil
	}
	return true, nil
}

func (l *Layout) WritePairs(ver Version, sink pairSink) error {
	pairs := []CodePair{
		StringPair(1, l.Name),
		ShortPair(71, int16(l.TabOrder)),
		DoublePair(10, l.MinLimits[0]), DoublePair(20, l.MinLimits[1]),
		DoublePair(11, l.MaxLimits[0]), DoublePair(21, l.MaxLimits[1]),
	}
	if l.BlockHandle.IsSet() {
		pairs = append(pairs, HandlePair(330, l.BlockHandle.Handle))
	}
	return emitAll(sink, pairs)
}

// MLineStyle describes one named multiline style.
type MLineStyle struct {
	ObjectData
	Name        string
	Description string
	Flags       int16
	StartAngle  float64
	EndAngle    float64
}

func (m *MLineStyle) TypeName() string    { return "MLINESTYLE" }
func (m *MLineStyle) Data() *ObjectData   { return &m.ObjectData }
func (m *MLineStyle) MinVersion() Version { return VersionR13 }
func (m *MLineStyle) MaxVersion() Version { return VersionR2018 }

func (m *MLineStyle) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 2:
		m.Name = pair.Str
	case 3:
		m.Description = pair.Str
	case 70:
		m.Flags = pair.I16
	case 51:
		m.StartAngle = pair.F64
	case 52:
		m.EndAngle = pair.F64
	default:
		return false, nil
	}
	return true, nil
}

func (m *MLineStyle) WritePairs(ver Version, sink pairSink) error {
	return emitAll(sink, []CodePair{
		StringPair(2, m.Name),
		ShortPair(70, m.Flags),
		StringPair(3, m.Description),
		DoublePair(51, m.StartAngle),
		DoublePair(52, m.EndAngle),
	})
}

// ImageDef references a raster image file attached to the drawing.
type ImageDef struct {
	ObjectData
	FileName string
	ImageSize [2]float64
	PixelSize [2]float64
	Loaded   bool
}

func (i *ImageDef) TypeName() string    { return "IMAGEDEF" }
func (i *ImageDef) Data() *ObjectData   { return &i.ObjectData }
func (i *ImageDef) MinVersion() Version { return VersionR14 }
func (i *ImageDef) MaxVersion() Version { return VersionR2018 }

func (i *ImageDef) ApplyPair(pair CodePair) (bool, error) {
	switch pair.Code {
	case 1:
		i.FileName = pair.Str
	case 10:
		i.ImageSize[0] = pair.F64
	case 20:
		i.ImageSize[1] = pair.F64
	case 11:
		i.PixelSize[0] = pair.F64
	case 21:
		i.PixelSize[1] = pair.F64
	case 280:
		i.Loaded = pair.I16 != 0
	default:
		return false, nil
	}
	return true, nil
}

func (i *ImageDef) WritePairs(ver Version, sink pairSink) error {
	return emitAll(sink, []CodePair{
		StringPair(1, i.FileName),
		DoublePair(10, i.ImageSize[0]), DoublePair(20, i.ImageSize[1]),
		DoublePair(11, i.PixelSize[0]), DoublePair(21, i.PixelSize[1]),
		ShortPair(280, boolToShort(i.Loaded)),
	})
}

func init() {
	registerObject("DICTIONARY", func() Object { return &Dictionary{} })
	registerObject("XRECORD", func() Object { return &XRecord{} })
	registerObject("GROUP", func() Object { return &Group{} })
	registerObject("LAYOUT", func() Object { return &Layout{} })
	registerObject("MLINESTYLE", func() Object { return &MLineStyle{} })
	registerObject("IMAGEDEF", func() Object { return &ImageDef{} })
}
