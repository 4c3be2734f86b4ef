// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Attrib is one ATTRIB entity trailing an INSERT that has attributes
// (Insert.Flags&1 != 0). Like Vertex, it is never registered as a
// top-level factory.
type Attrib struct {
	EntityData
	InsertionPoint [3]float64
	Height         float64
	Value          string
	Tag            string
	Flags          int16
}

// Insert is a block-reference entity. When its attributes-follow flag
// is set, the entity is followed on the wire by one ATTRIB per
// attribute definition and a closing SEQEND, mirroring POLYLINE's
// vertex run (§4.E "INSERT trailing attributes & SEQEND").
type Insert struct {
	EntityData
	BlockName          string
	InsertionPoint     [3]float64
	ScaleFactor        [3]float64
	Rotation           float64
	ColumnCount        int32
	RowCount           int32
	ColumnSpacing      float64
	RowSpacing         float64
	ExtrusionDirection [3]float64
	AttributesFollow   bool
	Attribs            []*Attrib
	SeqendHandle       Handle
	SeqendOwner        Pointer
}

func (i *Insert) TypeName() string    { return "INSERT" }
func (i *Insert) Data() *EntityData   { return &i.EntityData }
func (i *Insert) MinVersion() Version { return VersionR10 }
func (i *Insert) MaxVersion() Version { return VersionR2018 }

func (i *Insert) ApplyPair(pair CodePair) (bool, error) { return false, nil }

func (i *Insert) ReadBody(it *pairIterator, d *Drawing) error {
	i.ScaleFactor = [3]float64{1, 1, 1}
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || peeked.Code == 0 {
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
			i.ExtensionData = append(i.ExtensionData, ext)
		case 1001:
			xd, err := readXData(it, pair)
			if err != nil {
				return err
			}
			i.XData = append(i.XData, xd)
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				i.Handle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				i.Owner = NewPointer(h)
			}
		case 2:
			i.BlockName = pair.Str
		case 10:
			i.InsertionPoint[0] = pair.F64
		case 20:
			i.InsertionPoint[1] = pair.F64
		case 30:
			i.InsertionPoint[2] = pair.F64
		case 41:
			i.ScaleFactor[0] = pair.F64
		case 42:
			i.ScaleFactor[1] = pair.F64
		case 43:
			i.ScaleFactor[2] = pair.F64
		case 50:
			i.Rotation = pair.F64
		case 70:
			i.ColumnCount = int32(pair.I16)
		case 71:
			i.RowCount = int32(pair.I16)
		case 44:
			i.ColumnSpacing = pair.F64
		case 45:
			i.RowSpacing = pair.F64
		case 66:
			i.AttributesFollow = pair.I16 != 0
		case 210:
			i.ExtrusionDirection[0] = pair.F64
		case 220:
			i.ExtrusionDirection[1] = pair.F64
		case 230:
			i.ExtrusionDirection[2] = pair.F64
		default:
			if !applyBaseEntityField(&i.EntityData, pair) {
				i.RawPairs = append(i.RawPairs, pair)
			}
		}
	}

	if !i.AttributesFollow {
		return nil
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
			if _, _, err := it.next(); err != nil {
				return err
			}
			return i.readSeqend(it)
		}
		if peeked.Str != "ATTRIB" {
			return nil
		}
		if _, _, err := it.next(); err != nil {
			return err
		}
		a, err := readAttribBody(it)
		if err != nil {
			return err
		}
		i.Attribs = append(i.Attribs, a)
	}
}

func readAttribBody(it *pairIterator) (*Attrib, error) {
	a := &Attrib{}
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return nil, err
		}
		if !ok || peeked.Code == 0 {
			return a, nil
		}
		pair, _, err := it.next()
		if err != nil {
			return nil, err
		}
		switch pair.Code {
		case 10:
			a.InsertionPoint[0] = pair.F64
		case 20:
			a.InsertionPoint[1] = pair.F64
		case 30:
			a.InsertionPoint[2] = pair.F64
		case 40:
			a.Height = pair.F64
		case 1:
			a.Value = pair.Str
		case 2:
			a.Tag = pair.Str
		case 70:
			a.Flags = pair.I16
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				a.Handle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				a.Owner = NewPointer(h)
			}
		default:
			if !applyBaseEntityField(&a.EntityData, pair) {
				a.RawPairs = append(a.RawPairs, pair)
			}
		}
	}
}

func (i *Insert) readSeqend(it *pairIterator) error {
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
				i.SeqendHandle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				i.SeqendOwner = NewPointer(h)
			}
		}
	}
}

func (i *Insert) WriteBody(ver Version, sink pairSink) error {
	pairs := []CodePair{
		StringPair(2, i.BlockName),
		DoublePair(10, i.InsertionPoint[0]), DoublePair(20, i.InsertionPoint[1]), DoublePair(30, i.InsertionPoint[2]),
	}
	if i.ScaleFactor != [3]float64{1, 1, 1} && i.ScaleFactor != [3]float64{} {
		pairs = append(pairs, DoublePair(41, i.ScaleFactor[0]), DoublePair(42, i.ScaleFactor[1]), DoublePair(43, i.ScaleFactor[2]))
	}
	if i.Rotation != 0 {
		pairs = append(pairs, DoublePair(50, i.Rotation))
	}
	if i.ColumnCount > 1 {
		pairs = append(pairs, ShortPair(70, int16(i.ColumnCount)), DoublePair(44, i.ColumnSpacing))
	}
	if i.RowCount > 1 {
		pairs = append(pairs, ShortPair(71, int16(i.RowCount)), DoublePair(45, i.RowSpacing))
	}
	if i.AttributesFollow {
		pairs = append(pairs, ShortPair(66, 1))
	}
	if err := emitAll(sink, pairs); err != nil {
		return err
	}
	if err := emitAll(sink, i.RawPairs); err != nil {
		return err
	}
	if !i.AttributesFollow {
		return nil
	}
	for _, a := range i.Attribs {
		if err := sink.Emit(StringPair(0, "ATTRIB")); err != nil {
			return err
		}
		if a.Handle != NoHandle {
			if err := sink.Emit(HandlePair(5, a.Handle)); err != nil {
				return err
			}
		}
		if a.Owner.IsSet() {
			if err := sink.Emit(HandlePair(330, a.Owner.Handle)); err != nil {
				return err
			}
		}
		ap := []CodePair{
			DoublePair(10, a.InsertionPoint[0]), DoublePair(20, a.InsertionPoint[1]), DoublePair(30, a.InsertionPoint[2]),
			DoublePair(40, a.Height),
			StringPair(1, a.Value),
			StringPair(2, a.Tag),
			ShortPair(70, a.Flags),
		}
		if err := emitAll(sink, ap); err != nil {
			return err
		}
	}
	if err := sink.Emit(StringPair(0, "SEQEND")); err != nil {
		return err
	}
	if i.SeqendHandle != NoHandle {
		if err := sink.Emit(HandlePair(5, i.SeqendHandle)); err != nil {
			return err
		}
	}
	if i.SeqendOwner.IsSet() {
		return sink.Emit(HandlePair(330, i.SeqendOwner.Handle))
	}
	return nil
}

func init() {
	registerEntity("INSERT", func() Entity { return &Insert{} })
}
