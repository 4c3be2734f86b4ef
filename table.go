// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// TableRecordData is the common record shared by every TABLES-section
// entry: a handle, owner (the owning table), a name, and standard
// flags (§3 Entity/Object, specialised for tables).
type TableRecordData struct {
	Handle   Handle
	Owner    Pointer
	Name     string
	Flags    int16
	RawPairs []CodePair
}

// TableRecord is the behaviour every LAYER/LTYPE/STYLE/... row
// implements.
type TableRecord interface {
	TypeName() string
	Data() *TableRecordData
	MinVersion() Version
	MaxVersion() Version
	ApplyPair(pair CodePair) (accepted bool, err error)
	WritePairs(ver Version, sink pairSink) error
}

var tableRecordFactories = map[string]func() TableRecord{}

func registerTableRecord(typeName string, factory func() TableRecord) {
	tableRecordFactories[typeName] = factory
}

func applyBaseTableRecordField(data *TableRecordData, pair CodePair) bool {
	switch pair.Code {
	case 2:
		data.Name = pair.Str
		return true
	case 70:
		data.Flags = pair.I16
		return true
	case 330:
		if h, err := pair.AsHandle(); err == nil {
			data.Owner = NewPointer(h)
		}
		return true
	case 100:
		return true
	default:
		return false
	}
}

func writeBaseTableRecordFields(data *TableRecordData, ver Version, sink pairSink, subclass string) error {
	pairs := []CodePair{}
	if data.Handle != NoHandle {
		pairs = append(pairs, HandlePair(5, data.Handle))
	}
	if data.Owner.IsSet() && ver.IsAtLeast(VersionR13) {
		pairs = append(pairs, HandlePair(330, data.Owner.Handle))
	}
	if subclass != "" && ver.IsAtLeast(VersionR13) {
		pairs = append(pairs, StringPair(100, subclass))
	}
	pairs = append(pairs, StringPair(2, data.Name), ShortPair(70, data.Flags))
	for _, p := range pairs {
		if err := sink.Emit(p); err != nil {
			return err
		}
	}
	return nil
}

// UnknownTableRecord preserves a table-record variant this library
// does not model.
type UnknownTableRecord struct {
	TypeTag string
	TableRecordData
}

func NewUnknownTableRecord(typeTag string) *UnknownTableRecord {
	return &UnknownTableRecord{TypeTag: typeTag}
}

func (u *UnknownTableRecord) TypeName() string    { return u.TypeTag }
func (u *UnknownTableRecord) Data() *TableRecordData { return &u.TableRecordData }
func (u *UnknownTableRecord) MinVersion() Version { return VersionR10 }
func (u *UnknownTableRecord) MaxVersion() Version { return VersionR2018 }

func (u *UnknownTableRecord) ApplyPair(pair CodePair) (bool, error) {
	return applyBaseTableRecordField(&u.TableRecordData, pair)
}

func (u *UnknownTableRecord) WritePairs(ver Version, sink pairSink) error {
	// The raw pairs are emitted once, by writeTableRecord.
	return writeBaseTableRecordFields(&u.TableRecordData, ver, sink, "")
}

// readTableRecordBody runs the generic read protocol for r, given the
// already-read (0, type-name) pair.
func readTableRecordBody(it *pairIterator, r TableRecord) error {
	data := r.Data()
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
		if pair.Code == 5 {
			if h, err := pair.AsHandle(); err == nil {
				data.Handle = h
			}
			continue
		}
		accepted, err := r.ApplyPair(pair)
		if err != nil {
			return err
		}
		if !accepted {
			if !applyBaseTableRecordField(data, pair) {
				data.RawPairs = append(data.RawPairs, pair)
			}
		}
	}
}

func writeTableRecord(r TableRecord, ver Version, sink pairSink) error {
	if ver < r.MinVersion() || ver > r.MaxVersion() {
		return nil
	}
	data := r.Data()
	if err := sink.Emit(StringPair(0, r.TypeName())); err != nil {
		return err
	}
	// Handle, owner, subclass, name and flags are each variant's own
	// responsibility via writeBaseTableRecordFields (called from
	// WritePairs), so the common record is not duplicated here.
	if err := r.WritePairs(ver, sink); err != nil {
		return err
	}
	return emitAll(sink, data.RawPairs)
}

// Table is one named TABLES-section group (LAYER, LTYPE, ...) holding
// its records in read order.
type Table struct {
	Name    string
	Handle  Handle
	Owner   Pointer
	MaxEntries int32
	Records []TableRecord
}
