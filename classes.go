// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Class is one CLASSES-section record, declaring a custom (usually
// ObjectARX-defined) entity or object type before it is referenced in
// BLOCKS/ENTITIES/OBJECTS. This library never instantiates the custom
// behaviour the class describes, but preserves the declaration so a
// drawing that uses one round-trips.
type Class struct {
	RecordName    string
	CppClassName  string
	AppName       string
	ProxyFlags    int32
	InstanceCount int32
	WasZombie     bool
	IsEntity      bool
	RawPairs      []CodePair
}

// readClasses reads the CLASSES section body up to (but not
// consuming) the terminating (0, "ENDSEC").
func readClasses(it *pairIterator) ([]Class, error) {
	var classes []Class
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return nil, err
		}
		if !ok || peeked.Code != 0 {
			return classes, nil
		}
		if peeked.Str == "ENDSEC" {
			return classes, nil
		}
		if _, _, err := it.next(); err != nil {
			return nil, err
		}
		c, err := readClassBody(it)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
}

func readClassBody(it *pairIterator) (Class, error) {
	var c Class
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return Class{}, err
		}
		if !ok || peeked.Code == 0 {
			return c, nil
		}
		pair, _, err := it.next()
		if err != nil {
			return Class{}, err
		}
		switch pair.Code {
		case 1:
			c.RecordName = pair.Str
		case 2:
			c.CppClassName = pair.Str
		case 3:
			c.AppName = pair.Str
		case 90:
			c.ProxyFlags = pair.I32
		case 91:
			c.InstanceCount = pair.I32
		case 280:
			c.WasZombie = pair.I16 != 0
		case 281:
			c.IsEntity = pair.I16 != 0
		default:
			c.RawPairs = append(c.RawPairs, pair)
		}
	}
}

// writeClasses emits the CLASSES section body (not the SECTION/ENDSEC
// framing, which Drawing.Save handles uniformly).
func writeClasses(classes []Class, sink pairSink) error {
	for _, c := range classes {
		pairs := []CodePair{
			StringPair(0, "CLASS"),
			StringPair(1, c.RecordName),
			StringPair(2, c.CppClassName),
			StringPair(3, c.AppName),
			IntPair(90, c.ProxyFlags),
			IntPair(91, c.InstanceCount),
			ShortPair(280, boolToShort(c.WasZombie)),
			ShortPair(281, boolToShort(c.IsEntity)),
		}
		if err := emitAll(sink, pairs); err != nil {
			return err
		}
		if err := emitAll(sink, c.RawPairs); err != nil {
			return err
		}
	}
	return nil
}
