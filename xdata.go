// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// XDataItem is one leaf or nested-group entry inside an application's
// XDATA bucket, tagged by its wire code (§4.D). Exactly one field is
// meaningful, selected by Code; Group is populated when Code==1002.
type XDataItem struct {
	Code  int
	Str   string  // 1000 string, 1003 layer name
	Point [3]float64 // 1010/20/30, 1011/21/31, 1012/22/32, 1013/23/33
	Real  float64 // 1040, 1041, 1042
	Short int16   // 1070
	Long  int32   // 1071
	Handle Handle // 1005
	Binary []byte // 1004
	Group  []XDataItem // interior of a 1002 "{" ... "}" bracket
}

// XData is the trailing, per-application bucket introduced by a
// code-1001 app-name pair (§3 XDATA, §4.D).
type XData struct {
	AppName string
	Items   []XDataItem
}

// readXData consumes one XDATA bucket. open is the already-read
// (1001, app-name) pair. Reading continues while the iterator's next
// peeked pair has a code >= 1000.
func readXData(it *pairIterator, open CodePair) (XData, error) {
	xd := XData{AppName: open.Str}
	items, err := readXDataItems(it)
	if err != nil {
		return XData{}, err
	}
	xd.Items = items
	return xd, nil
}

// readXDataItems reads leaf/group items until the next pair has code
// < 1000 (a new entity, or ENDSEC) or is a 1001 opening a new XDATA
// bucket, or the current group closes with a 1002 "}" pair.
func readXDataItems(it *pairIterator) ([]XDataItem, error) {
	var items []XDataItem
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return nil, err
		}
		if !ok || peeked.Code < 1000 || peeked.Code == 1001 {
			return items, nil
		}
		pair, _, err := it.next()
		if err != nil {
			return nil, err
		}
		switch pair.Code {
		case 1002:
			if pair.Str == "}" {
				return items, nil
			}
			nested, err := readXDataItems(it)
			if err != nil {
				return nil, err
			}
			// Consume the matching close bracket.
			if closing, ok, err := it.next(); err != nil {
				return nil, err
			} else if !ok || closing.Code != 1002 || closing.Str != "}" {
				return nil, &UnexpectedEndOfInputError{Offset: it.offset(), Context: "xdata group"}
			}
			items = append(items, XDataItem{Code: 1002, Group: nested})
		case 1000, 1003:
			items = append(items, XDataItem{Code: pair.Code, Str: pair.Str})
		case 1004:
			items = append(items, XDataItem{Code: pair.Code, Binary: pair.Bin})
		case 1005:
			h, err := pair.AsHandle()
			if err != nil {
				return nil, err
			}
			items = append(items, XDataItem{Code: pair.Code, Handle: h})
		case 1010, 1011, 1012, 1013:
			pt, err := readXDataPoint(it, pair)
			if err != nil {
				return nil, err
			}
			items = append(items, pt)
		case 1040, 1041, 1042:
			items = append(items, XDataItem{Code: pair.Code, Real: pair.F64})
		case 1070:
			items = append(items, XDataItem{Code: pair.Code, Short: pair.I16})
		case 1071:
			items = append(items, XDataItem{Code: pair.Code, Long: pair.I32})
		default:
			// Unrecognised XDATA code: preserve as a string-ish leaf
			// so writeback round-trips even for unknown codes.
			items = append(items, XDataItem{Code: pair.Code, Str: pair.Str, Real: pair.F64})
		}
	}
}

// readXDataPoint reads the three consecutive double pairs (base code,
// +10, +20) that make up a 3D point XDATA item.
func readXDataPoint(it *pairIterator, first CodePair) (XDataItem, error) {
	pt := XDataItem{Code: first.Code}
	pt.Point[0] = first.F64
	for i := 1; i < 3; i++ {
		p, ok, err := it.next()
		if err != nil {
			return XDataItem{}, err
		}
		if !ok {
			return XDataItem{}, &UnexpectedEndOfInputError{Offset: it.offset(), Context: "xdata point"}
		}
		pt.Point[i] = p.F64
	}
	return pt, nil
}

// writePairs emits this bucket's (1001, app) opener followed by its
// items, recursively expanding nested groups.
func (x XData) writePairs(sink pairSink) error {
	if err := sink.Emit(StringPair(1001, x.AppName)); err != nil {
		return err
	}
	return writeXDataItems(sink, x.Items)
}

func writeXDataItems(sink pairSink, items []XDataItem) error {
	for _, item := range items {
		switch item.Code {
		case 1002:
			if err := sink.Emit(StringPair(1002, "{")); err != nil {
				return err
			}
			if err := writeXDataItems(sink, item.Group); err != nil {
				return err
			}
			if err := sink.Emit(StringPair(1002, "}")); err != nil {
				return err
			}
		case 1000, 1003:
			if err := sink.Emit(StringPair(item.Code, item.Str)); err != nil {
				return err
			}
		case 1004:
			if err := sink.Emit(BinaryPair(item.Code, item.Binary)); err != nil {
				return err
			}
		case 1005:
			if err := sink.Emit(HandlePair(item.Code, item.Handle)); err != nil {
				return err
			}
		case 1010, 1011, 1012, 1013:
			for i, code := range [3]int{item.Code, item.Code + 10, item.Code + 20} {
				if err := sink.Emit(DoublePair(code, item.Point[i])); err != nil {
					return err
				}
			}
		case 1040, 1041, 1042:
			if err := sink.Emit(DoublePair(item.Code, item.Real)); err != nil {
				return err
			}
		case 1070:
			if err := sink.Emit(ShortPair(item.Code, item.Short)); err != nil {
				return err
			}
		case 1071:
			if err := sink.Emit(IntPair(item.Code, item.Long)); err != nil {
				return err
			}
		default:
			if err := sink.Emit(StringPair(item.Code, item.Str)); err != nil {
				return err
			}
		}
	}
	return nil
}
