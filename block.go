// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Block is one BLOCK ... ENDBLK fence in the BLOCKS section: a header
// record, the entities it owns, and a closing ENDBLK marker. Unlike
// POLYLINE/INSERT's trailing-run patterns, a block's body is an
// open-ended list of arbitrary entities rather than one fixed
// successor type, so it is driven by the same entity dispatch table
// used for the ENTITIES section (§4.E block/layout linkage).
type Block struct {
	Handle       Handle
	Owner        Pointer
	Name         string
	Flags        int16
	BasePoint    [3]float64
	Layer        string
	Entities     []Entity
	EndBlkHandle Handle
	EndBlkOwner  Pointer
	RawPairs     []CodePair
}

// readBlock reads one BLOCK record given the already-consumed (0,
// "BLOCK") pair: its own header fields, then every entity up to the
// (0, "ENDBLK") marker, then ENDBLK's own common-record fields.
func readBlock(it *pairIterator, d *Drawing, opts *Options) (*Block, error) {
	b := &Block{}
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return nil, err
		}
		if !ok || peeked.Code == 0 {
			break
		}
		pair, _, err := it.next()
		if err != nil {
			return nil, err
		}
		switch pair.Code {
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				b.Handle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				b.Owner = NewPointer(h)
			}
		case 2, 3:
			b.Name = pair.Str
		case 70:
			b.Flags = pair.I16
		case 8:
			b.Layer = pair.Str
		case 10:
			b.BasePoint[0] = pair.F64
		case 20:
			b.BasePoint[1] = pair.F64
		case 30:
			b.BasePoint[2] = pair.F64
		case 100, 1:
			// AcDbEntity/AcDbBlockBegin markers, xref path name: not
			// separately tracked.
		default:
			b.RawPairs = append(b.RawPairs, pair)
		}
	}

	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &UnexpectedEndOfInputError{Offset: it.offset(), Context: "block entities"}
		}
		if peeked.Code != 0 {
			return nil, &MalformedPairError{Offset: it.offset(), Code: peeked.Code, ValueExcerpt: "expected entity or ENDBLK"}
		}
		if peeked.Str == "ENDBLK" {
			if _, _, err := it.next(); err != nil {
				return nil, err
			}
			if err := readEndBlk(it, b); err != nil {
				return nil, err
			}
			return b, nil
		}
		tag, _, err := it.next()
		if err != nil {
			return nil, err
		}
		e, err := newEntityForTag(tag.Str, opts)
		if err != nil {
			return nil, err
		}
		if err := readEntityBody(it, e, d, opts.MaxExtensionDataDepth); err != nil {
			return nil, err
		}
		b.Entities = append(b.Entities, e)
	}
}

func readEndBlk(it *pairIterator, b *Block) error {
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
				b.EndBlkHandle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				b.EndBlkOwner = NewPointer(h)
			}
		}
	}
}

// writeBlock emits a block's BLOCK header, its entities, and the
// closing ENDBLK, for the given target version.
func writeBlock(b *Block, ver Version, sink pairSink) error {
	if err := sink.Emit(StringPair(0, "BLOCK")); err != nil {
		return err
	}
	if b.Handle != NoHandle {
		if err := sink.Emit(HandlePair(5, b.Handle)); err != nil {
			return err
		}
	}
	if b.Owner.IsSet() && ver.IsAtLeast(VersionR13) {
		if err := sink.Emit(HandlePair(330, b.Owner.Handle)); err != nil {
			return err
		}
	}
	pairs := []CodePair{
		StringPair(8, b.Layer),
		StringPair(2, b.Name),
		ShortPair(70, b.Flags),
		DoublePair(10, b.BasePoint[0]), DoublePair(20, b.BasePoint[1]), DoublePair(30, b.BasePoint[2]),
		StringPair(3, b.Name),
	}
	if err := emitAll(sink, pairs); err != nil {
		return err
	}
	if err := emitAll(sink, b.RawPairs); err != nil {
		return err
	}
	for _, e := range b.Entities {
		if err := writeEntity(e, ver, sink); err != nil {
			return err
		}
	}
	if err := sink.Emit(StringPair(0, "ENDBLK")); err != nil {
		return err
	}
	if b.EndBlkHandle != NoHandle {
		if err := sink.Emit(HandlePair(5, b.EndBlkHandle)); err != nil {
			return err
		}
	}
	if b.EndBlkOwner.IsSet() && ver.IsAtLeast(VersionR13) {
		return sink.Emit(HandlePair(330, b.EndBlkOwner.Handle))
	}
	return nil
}
