// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// MText is a multiline text entity. Its primary text (code 1) is
// limited to 250 bytes per chunk on the wire; overflow is carried in
// a run of code-3 continuation pairs that must be concatenated in
// order, followed by the final code-1 chunk (§4.E "MTEXT code-3
// continuation").
type MText struct {
	EntityData
	InsertionPoint     [3]float64
	Height             float64
	RefWidth           float64
	AttachmentPoint    int16
	DrawingDirection   DrawingDirection
	Text               string
	Style              string
	ExtrusionDirection [3]float64
	Rotation           float64
}

func (m *MText) TypeName() string    { return "MTEXT" }
func (m *MText) Data() *EntityData   { return &m.EntityData }
func (m *MText) MinVersion() Version { return VersionR13 }
func (m *MText) MaxVersion() Version { return VersionR2018 }

// ApplyPair is never called: MText implements customBodyReader since
// the code-3/code-1 text split cannot be modeled as independent
// fields (a later code-1 must overwrite, not append to, the
// accumulated code-3 chunks).
func (m *MText) ApplyPair(pair CodePair) (bool, error) { return false, nil }

func (m *MText) ReadBody(it *pairIterator, d *Drawing) error {
	var chunks string
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
			m.ExtensionData = append(m.ExtensionData, ext)
		case 1001:
			xd, err := readXData(it, pair)
			if err != nil {
				return err
			}
			m.XData = append(m.XData, xd)
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				m.Handle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				m.Owner = NewPointer(h)
			}
		case 3:
			// Continuation chunk: accumulate, do not overwrite.
			chunks += pair.Str
		case 1:
			// Final chunk closes the run.
			m.Text = chunks + pair.Str
			chunks = ""
		case 10:
			m.InsertionPoint[0] = pair.F64
		case 20:
			m.InsertionPoint[1] = pair.F64
		case 30:
			m.InsertionPoint[2] = pair.F64
		case 40:
			m.Height = pair.F64
		case 41:
			m.RefWidth = pair.F64
		case 50:
			m.Rotation = pair.F64
		case 71:
			m.AttachmentPoint = pair.I16
		case 72:
			m.DrawingDirection = DrawingDirectionFromWire(pair.I16)
		case 7:
			m.Style = pair.Str
		case 210:
			m.ExtrusionDirection[0] = pair.F64
		case 220:
			m.ExtrusionDirection[1] = pair.F64
		case 230:
			m.ExtrusionDirection[2] = pair.F64
		default:
			if !applyBaseEntityField(&m.EntityData, pair) {
				m.RawPairs = append(m.RawPairs, pair)
			}
		}
	}
	// A file with only 3-codes and no closing 1-code is malformed but
	// tolerated: surface whatever text accumulated.
	if chunks != "" && m.Text == "" {
		m.Text = chunks
	}
	return nil
}

// WriteBody re-splits Text into 250-byte code-3 chunks followed by a
// final code-1 chunk, mirroring how AutoCAD writers wrap long MTEXT
// contents.
func (m *MText) WriteBody(ver Version, sink pairSink) error {
	pairs := []CodePair{
		DoublePair(10, m.InsertionPoint[0]), DoublePair(20, m.InsertionPoint[1]), DoublePair(30, m.InsertionPoint[2]),
		DoublePair(40, m.Height),
	}
	if m.RefWidth != 0 {
		pairs = append(pairs, DoublePair(41, m.RefWidth))
	}
	pairs = append(pairs, ShortPair(71, m.AttachmentPoint), ShortPair(72, int16(m.DrawingDirection)))
	if err := emitAll(sink, pairs); err != nil {
		return err
	}
	const chunkSize = 250
	text := m.Text
	for len(text) > chunkSize {
		if err := sink.Emit(StringPair(3, text[:chunkSize])); err != nil {
			return err
		}
		text = text[chunkSize:]
	}
	if err := sink.Emit(StringPair(1, text)); err != nil {
		return err
	}
	tail := []CodePair{}
	if m.Style != "" {
		tail = append(tail, StringPair(7, m.Style))
	}
	if m.Rotation != 0 {
		tail = append(tail, DoublePair(50, m.Rotation))
	}
	if err := emitAll(sink, tail); err != nil {
		return err
	}
	return emitAll(sink, m.RawPairs)
}

func init() {
	registerEntity("MTEXT", func() Entity { return &MText{} })
}
