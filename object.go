// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// ObjectData is the common record every non-graphical object variant
// embeds (§3 Entity/Object: objects share handle/owner/reactors/
// extension-data/XDATA with entities, but carry no layer/color/
// geometry).
type ObjectData struct {
	Handle   Handle
	Owner    Pointer
	Reactors []Pointer

	ExtensionData []ExtensionData
	XData         []XData
	Subclasses    []string
	RawPairs      []CodePair
}

// Object is the behaviour every OBJECTS-section variant implements,
// mirroring Entity's contract minus the graphical common record.
type Object interface {
	TypeName() string
	Data() *ObjectData
	MinVersion() Version
	MaxVersion() Version
	ApplyPair(pair CodePair) (accepted bool, err error)
	WritePairs(ver Version, sink pairSink) error
}

// customObjectBodyReader mirrors customBodyReader for objects whose
// interior cannot be decoded one pair at a time: DICTIONARY's repeated
// (3, name)/(350, handle) entry pairs.
type customObjectBodyReader interface {
	ReadObjectBody(it *pairIterator, d *Drawing) error
}

type customObjectBodyWriter interface {
	WriteObjectBody(ver Version, sink pairSink) error
}

var objectFactories = map[string]func() Object{}

func registerObject(typeName string, factory func() Object) {
	objectFactories[typeName] = factory
}

// applyBaseObjectField handles the common-record codes shared by
// every object variant.
func applyBaseObjectField(data *ObjectData, pair CodePair) bool {
	switch pair.Code {
	case 100:
		data.Subclasses = append(data.Subclasses, pair.Str)
		return true
	case 330:
		if h, err := pair.AsHandle(); err == nil {
			data.Owner = NewPointer(h)
		}
		return true
	case 360:
		if h, err := pair.AsHandle(); err == nil {
			data.Reactors = append(data.Reactors, NewPointer(h))
		}
		return true
	default:
		return false
	}
}

// UnknownObject preserves an object variant this library does not
// model, verbatim, the same way UnknownEntity does for entities.
type UnknownObject struct {
	TypeTag string
	ObjectData
}

func NewUnknownObject(typeTag string) *UnknownObject {
	return &UnknownObject{TypeTag: typeTag}
}

func (u *UnknownObject) TypeName() string    { return u.TypeTag }
func (u *UnknownObject) Data() *ObjectData   { return &u.ObjectData }
func (u *UnknownObject) MinVersion() Version { return VersionR10 }
func (u *UnknownObject) MaxVersion() Version { return VersionR2018 }

func (u *UnknownObject) ApplyPair(pair CodePair) (bool, error) {
	return applyBaseObjectField(&u.ObjectData, pair)
}

func (u *UnknownObject) WritePairs(ver Version, sink pairSink) error {
	// The raw pairs are emitted once, by writeObject.
	return nil
}

// readObjectBody runs the generic OBJECTS-section read protocol for
// o, given the already-read (0, type-name) pair.
func readObjectBody(it *pairIterator, o Object, d *Drawing, maxExtDepth int) error {
	if cr, ok := o.(customObjectBodyReader); ok {
		return cr.ReadObjectBody(it, d)
	}
	data := o.Data()
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
		default:
			accepted, err := o.ApplyPair(pair)
			if err != nil {
				return err
			}
			if !accepted {
				if !applyBaseObjectField(data, pair) {
					data.RawPairs = append(data.RawPairs, pair)
				}
			}
		}
	}
}

func writeObject(o Object, ver Version, sink pairSink) error {
	if ver < o.MinVersion() || ver > o.MaxVersion() {
		return nil
	}
	data := o.Data()
	if err := sink.Emit(StringPair(0, o.TypeName())); err != nil {
		return err
	}
	if data.Handle != NoHandle {
		if err := sink.Emit(HandlePair(5, data.Handle)); err != nil {
			return err
		}
	}
	if data.Owner.IsSet() {
		if err := sink.Emit(HandlePair(330, data.Owner.Handle)); err != nil {
			return err
		}
	}
	if cw, ok := o.(customObjectBodyWriter); ok {
		if err := cw.WriteObjectBody(ver, sink); err != nil {
			return err
		}
	} else if err := o.WritePairs(ver, sink); err != nil {
		return err
	}
	for _, r := range data.Reactors {
		if err := sink.Emit(HandlePair(360, r.Handle)); err != nil {
			return err
		}
	}
	for _, p := range data.RawPairs {
		if err := sink.Emit(p); err != nil {
			return err
		}
	}
	return writeExtensionAndXData(data.ExtensionData, data.XData, sink)
}
