// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "encoding/binary"

// bmpFileHeaderSize is the fixed BITMAPFILEHEADER size: signature (2),
// file size (4), two reserved fields (2 each), pixel data offset (4).
const bmpFileHeaderSize = 14

// Thumbnail is the raw preview bitmap stored in the THUMBNAILIMAGE
// section (§4.G). Only enough of the BMP container is validated to
// detect corruption; this is not a pixel decoder.
type Thumbnail struct {
	Data   []byte
	Width  int32
	Height int32
	Valid  bool
}

// validateBMP checks the BITMAPFILEHEADER + BITMAPINFOHEADER prefix
// of data: the "BM" signature, a plausible header size, and that the
// declared pixel-data offset does not run past the buffer. Anything
// that fails this check is dropped by the loader with a warning (§4.G),
// not surfaced as an error, since a corrupt thumbnail is cosmetic and must never block
// loading the rest of the drawing.
func validateBMP(data []byte) (width, height int32, ok bool) {
	if len(data) < bmpFileHeaderSize+4 {
		return 0, 0, false
	}
	if data[0] != 'B' || data[1] != 'M' {
		return 0, 0, false
	}
	pixelOffset := binary.LittleEndian.Uint32(data[10:14])
	infoHeaderSize := binary.LittleEndian.Uint32(data[14:18])
	if infoHeaderSize < 40 || int(bmpFileHeaderSize+infoHeaderSize) > len(data) {
		return 0, 0, false
	}
	if int(pixelOffset) > len(data) {
		return 0, 0, false
	}
	if len(data) < bmpFileHeaderSize+18 {
		return 0, 0, false
	}
	w := int32(binary.LittleEndian.Uint32(data[18:22]))
	h := int32(binary.LittleEndian.Uint32(data[22:26]))
	return w, h, true
}

// readThumbnail decodes the THUMBNAILIMAGE section body: a code-90
// byte count followed by one or more code-310 binary chunks (§4.G).
func readThumbnail(it *pairIterator) (*Thumbnail, error) {
	var buf []byte
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
		if pair.Code == 310 {
			buf = append(buf, pair.Bin...)
		}
	}
	t := &Thumbnail{Data: buf}
	t.Width, t.Height, t.Valid = validateBMP(buf)
	return t, nil
}

// writeThumbnail emits the byte count and chunked binary data for t.
// Invalid thumbnails are not written at all: Drawing.Save skips the
// section entirely when Thumbnail is nil or !Valid.
func writeThumbnail(t *Thumbnail, sink pairSink) error {
	if err := sink.Emit(IntPair(90, int32(len(t.Data)))); err != nil {
		return err
	}
	const chunkSize = 127
	for off := 0; off < len(t.Data); off += chunkSize {
		end := off + chunkSize
		if end > len(t.Data) {
			end = len(t.Data)
		}
		if err := sink.Emit(BinaryPair(310, t.Data[off:end])); err != nil {
			return err
		}
	}
	return nil
}
