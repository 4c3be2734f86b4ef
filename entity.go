// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// EntityData is the common record every entity variant embeds:
// handle, owner, layer, linetype, color, lineweight, transparency,
// material/plot-style pointers, extension data and XDATA (§3
// Entity/Object). Concrete variants add their own fields alongside
// this one.
type EntityData struct {
	Handle   Handle
	Owner    Pointer
	Reactors []Pointer

	Layer        string
	Linetype     string
	Color        Color
	TrueColor    int32 // code 420, 0 means unset
	Lineweight   Lineweight
	Transparency int32 // code 440, 0 means ByLayer
	Material     Pointer
	PlotStyle    Pointer

	ExtensionData []ExtensionData
	XData         []XData

	// Subclasses records every AcDb... subclass marker (code 100)
	// encountered, in order. Writing does not replay this list: the
	// common record writes its own AcDbEntity marker.
	Subclasses []string

	// RawPairs preserves every pair this variant's field table did not
	// recognise, verbatim and in order, so the entity writes back
	// exactly as read (§3 invariant, §4.E step 6).
	RawPairs []CodePair
}

// Entity is the behaviour every one of the ~200 tagged variants
// implements: a type name fixing the on-wire (0, ...) tag, a version
// gate, and the field-table contract from §6 (type_name, min/max
// version, apply_pair, write_pairs).
type Entity interface {
	TypeName() string
	Data() *EntityData
	MinVersion() Version
	MaxVersion() Version

	// ApplyPair offers one pair to the variant's field table. It
	// returns accepted=false for anything the table does not
	// recognise, which the generic reader then stores in RawPairs.
	ApplyPair(pair CodePair) (accepted bool, err error)

	// WritePairs emits this variant's own fields (not the common
	// record, not extension data/XDATA/raw pairs, which the generic
	// writer handles uniformly) for the given target version.
	WritePairs(ver Version, sink pairSink) error
}

// customBodyReader is implemented by variants whose interior pairs
// cannot be decoded one at a time against a flat field table: HATCH
// boundary paths, LWPOLYLINE vertex interleaving, SPLINE knot/control
// interleaving, MTEXT code-3 continuation, INSERT trailing attributes
// terminated by SEQEND, and POLYLINE successor vertices terminated by
// SEQEND (§4.E "custom readers"). When present, it entirely replaces
// the generic per-pair dispatch loop for this entity's body.
type customBodyReader interface {
	ReadBody(it *pairIterator, d *Drawing) error
}

// customBodyWriter mirrors customBodyReader for the write side.
type customBodyWriter interface {
	WriteBody(ver Version, sink pairSink) error
}

// entityFactories maps the on-wire (0, type-name) tag to a
// constructor. Populated by registerEntity calls in the init functions
// of the entity_*.go files, evaluated in package init order.
var entityFactories = map[string]func() Entity{}

func registerEntity(typeName string, factory func() Entity) {
	entityFactories[typeName] = factory
}

// applyBaseEntityField handles the common-record codes shared by
// every entity variant (§3 Entity/Object): layer, linetype, color,
// lineweight, true color, transparency, material and plot style
// pointers, and subclass markers. readEntityBody calls this after a
// variant's ApplyPair declines a code, and the custom body readers
// call it for codes they do not handle themselves.
func applyBaseEntityField(data *EntityData, pair CodePair) bool {
	switch pair.Code {
	case 100:
		data.Subclasses = append(data.Subclasses, pair.Str)
		return true
	case 8:
		data.Layer = pair.Str
		return true
	case 6:
		data.Linetype = pair.Str
		return true
	case 62:
		data.Color = ColorFromWire(pair.I16)
		return true
	case 370:
		data.Lineweight = LineweightFromWire(pair.I16)
		return true
	case 420:
		data.TrueColor = pair.I32
		return true
	case 440:
		data.Transparency = pair.I32
		return true
	case 347:
		if h, err := pair.AsHandle(); err == nil {
			data.Material = NewPointer(h)
		}
		return true
	case 390:
		if h, err := pair.AsHandle(); err == nil {
			data.PlotStyle = NewPointer(h)
		}
		return true
	case 330:
		if h, err := pair.AsHandle(); err == nil {
			data.Reactors = append(data.Reactors, NewPointer(h))
		}
		return true
	default:
		return false
	}
}

// writeBaseEntityFields emits the common-record fields in the order
// real AutoCAD writers use: handle, AcDbEntity subclass marker, then
// layer/linetype/color/etc (§4.E Write protocol).
func writeBaseEntityFields(data *EntityData, ver Version, sink pairSink) error {
	pairs := []CodePair{}
	if data.Handle != NoHandle {
		pairs = append(pairs, HandlePair(5, data.Handle))
	}
	if data.Owner.IsSet() && ver.IsAtLeast(VersionR13) {
		pairs = append(pairs, HandlePair(330, data.Owner.Handle))
	}
	pairs = append(pairs, StringPair(100, "AcDbEntity"))
	if data.Layer != "" {
		pairs = append(pairs, StringPair(8, data.Layer))
	}
	if data.Linetype != "" && data.Linetype != "BYLAYER" {
		pairs = append(pairs, StringPair(6, data.Linetype))
	}
	if data.Color != ColorByLayer {
		pairs = append(pairs, ShortPair(62, data.Color.ToWire()))
	}
	if ver.IsAtLeast(VersionR13) && data.Lineweight != LineweightByLayer {
		pairs = append(pairs, ShortPair(370, data.Lineweight.ToWire()))
	}
	if ver.IsAtLeast(VersionR2000) && data.TrueColor != 0 {
		pairs = append(pairs, IntPair(420, data.TrueColor))
	}
	if ver.IsAtLeast(VersionR2004) && data.Transparency != 0 {
		pairs = append(pairs, IntPair(440, data.Transparency))
	}
	for _, p := range pairs {
		if err := sink.Emit(p); err != nil {
			return err
		}
	}
	return nil
}

// writeExtensionAndXData emits an entity or object's extension-data
// groups and XDATA buckets last, in insertion order (§4.E Write
// protocol: "Extension-data and XDATA are emitted last").
func writeExtensionAndXData(ext []ExtensionData, xd []XData, sink pairSink) error {
	for _, e := range ext {
		if err := e.writePairs(sink); err != nil {
			return err
		}
	}
	for _, x := range xd {
		if err := x.writePairs(sink); err != nil {
			return err
		}
	}
	return nil
}

// UnknownEntity preserves an entity variant this library does not
// model. Every interior pair is stored verbatim in RawPairs (common
// record fields are still parsed out, since steps 1-3 of the
// dispatch protocol apply regardless of variant) so the entity writes
// back exactly as read (§3 invariant, §8 boundary scenario).
type UnknownEntity struct {
	TypeTag string
	EntityData
}

// NewUnknownEntity constructs a fallback entity for typeTag.
func NewUnknownEntity(typeTag string) *UnknownEntity {
	return &UnknownEntity{TypeTag: typeTag}
}

func (u *UnknownEntity) TypeName() string    { return u.TypeTag }
func (u *UnknownEntity) Data() *EntityData   { return &u.EntityData }
func (u *UnknownEntity) MinVersion() Version { return VersionR10 }
func (u *UnknownEntity) MaxVersion() Version { return VersionR2018 }

func (u *UnknownEntity) ApplyPair(pair CodePair) (bool, error) {
	return applyBaseEntityField(&u.EntityData, pair)
}

func (u *UnknownEntity) WritePairs(ver Version, sink pairSink) error {
	// The raw pairs are emitted once, by writeEntity.
	return nil
}

// newEntityForTag resolves the (0, type-name) tag to a registered
// variant, or an UnknownEntity fallback when DropUnknownEntities is
// false (the default) and the tag is unrecognised. With
// DropUnknownEntities set, an unrecognised tag's pairs are consumed
// and discarded by the caller instead of reaching here.
func newEntityForTag(typeName string, opts *Options) (Entity, error) {
	if factory, ok := entityFactories[typeName]; ok {
		return factory(), nil
	}
	return NewUnknownEntity(typeName), nil
}

// readEntityBody runs the generic §4.E read protocol for e, given the
// already-read (0, type-name) pair. It stops without consuming the
// pair that terminates the entity (the next code-0 pair).
func readEntityBody(it *pairIterator, e Entity, d *Drawing, maxExtDepth int) error {
	if cr, ok := e.(customBodyReader); ok {
		return cr.ReadBody(it, d)
	}
	data := e.Data()
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
		switch {
		case pair.Code == 102:
			ext, err := readExtensionData(it, pair, maxExtDepth)
			if err != nil {
				return err
			}
			data.ExtensionData = append(data.ExtensionData, ext)
		case pair.Code == 1001:
			xd, err := readXData(it, pair)
			if err != nil {
				return err
			}
			data.XData = append(data.XData, xd)
		case pair.Code == 5:
			h, err := pair.AsHandle()
			if err == nil {
				data.Handle = h
			}
		case pair.Code == 330 && data.Owner.Handle == NoHandle:
			h, err := pair.AsHandle()
			if err == nil {
				data.Owner = NewPointer(h)
			}
		default:
			accepted, err := e.ApplyPair(pair)
			if err != nil {
				return err
			}
			if !accepted {
				if !applyBaseEntityField(data, pair) {
					data.RawPairs = append(data.RawPairs, pair)
				}
			}
		}
	}
}

// writeEntity runs the generic §4.E write protocol for e: the (0,
// type-name) tag, common record, variant fields, raw pairs, then
// extension data/XDATA. A custom body writer emits its own raw pairs
// at the point its layout needs them, so they are not repeated here.
func writeEntity(e Entity, ver Version, sink pairSink) error {
	if ver < e.MinVersion() || ver > e.MaxVersion() {
		return nil
	}
	data := e.Data()
	if err := sink.Emit(StringPair(0, e.TypeName())); err != nil {
		return err
	}
	if err := writeBaseEntityFields(data, ver, sink); err != nil {
		return err
	}
	if cw, ok := e.(customBodyWriter); ok {
		if err := cw.WriteBody(ver, sink); err != nil {
			return err
		}
	} else {
		if err := e.WritePairs(ver, sink); err != nil {
			return err
		}
		for _, p := range data.RawPairs {
			if err := sink.Emit(p); err != nil {
				return err
			}
		}
	}
	return writeExtensionAndXData(data.ExtensionData, data.XData, sink)
}
