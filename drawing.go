// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/text/encoding"
)

// Drawing is the in-memory model of one DXF/DXB document (§3 Drawing):
// the header, declared classes, named tables, block definitions,
// top-level entities, non-graphical objects, and an optional preview
// thumbnail.
type Drawing struct {
	Header     *Header
	Classes    []Class
	Tables     map[string]*Table
	TableOrder []string
	Blocks     []*Block
	Entities   []Entity
	Objects    []Object
	Thumbnail  *Thumbnail

	// Warnings accumulates every recoverable condition encountered
	// while loading, and the owners and links Save/SaveBinary rehome or
	// drop for the target version (§7 policy: tolerate and report,
	// never fail the whole load over a cosmetic or isolated defect).
	Warnings []string

	handles *HandleTracker
	opts    *Options
}

// NewDrawing returns an empty Drawing with defaulted Header and
// Options, ready to be populated and Saved.
func NewDrawing() *Drawing {
	return &Drawing{
		Header:  NewHeader(),
		Tables:  map[string]*Table{},
		handles: NewHandleTracker(1),
		opts:    defaultOptions(nil),
	}
}

// Clear resets d to the same state NewDrawing produces.
func (d *Drawing) Clear() {
	d.Header = NewHeader()
	d.Classes = nil
	d.Tables = map[string]*Table{}
	d.TableOrder = nil
	d.Blocks = nil
	d.Entities = nil
	d.Objects = nil
	d.Thumbnail = nil
	d.Warnings = nil
	d.handles = NewHandleTracker(1)
}

// Load reads a drawing from r, auto-detecting ASCII vs binary framing
// from the leading bytes (§4.A sentinel detection). Equivalent to
// LoadWithEncoding(r, nil, opts).
func Load(r io.Reader, opts *Options) (*Drawing, error) {
	return LoadWithEncoding(r, nil, opts)
}

// LoadWithEncoding reads a drawing from r. enc, if non-nil, overrides
// $DWGCODEPAGE-based code-page detection for pre-R2007 ASCII content.
func LoadWithEncoding(r io.Reader, enc encoding.Encoding, opts *Options) (*Drawing, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	o := defaultOptions(opts)
	if enc != nil {
		o.Encoding = enc
	}
	return loadBytes(data, o)
}

// LoadFile memory-maps path, copies the mapping into a heap buffer and
// loads from that buffer; the mapping is released before LoadFile
// returns.
func LoadFile(path string, opts *Options) (*Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer m.Unmap()
	buf := make([]byte, len(m))
	copy(buf, m)
	return loadBytes(buf, opts)
}

func loadBytes(data []byte, opts *Options) (*Drawing, error) {
	o := defaultOptions(opts)
	d := NewDrawing()
	d.opts = o

	var reader PairReader
	if sniffBinary(data) {
		body := data[len(binarySentinel):]
		// Peek $ACADVER to decide pre-/post-R13 framing before
		// constructing the real reader: pre-R13 files never reach
		// CLASSES/OBJECTS and use single-byte codes.
		post := detectPostR13Binary(body)
		reader = NewBinaryReader(bytes.NewReader(body), post)
	} else {
		ar := NewAsciiReader(bytes.NewReader(data))
		if o.Encoding != nil {
			ar.SetEncoding(o.Encoding)
		}
		reader = ar
	}

	it := newPairIterator(reader)
	if err := d.readSections(it, o); err != nil {
		return nil, err
	}
	d.handles = NewHandleTracker(d.Header.HandleSeed)
	d.observeHandles()
	d.fixupPointers()
	return d, nil
}

// detectPostR13Binary makes a best-effort guess at the pre-/post-R13
// binary framing by scanning for the first plausible $ACADVER token
// under both interpretations, falling back to post-R13 (the framing
// every AutoCAD release since 2000 uses) when undecidable.
func detectPostR13Binary(body []byte) bool {
	acadver := []byte("$ACADVER")
	idx := bytes.Index(body, acadver)
	if idx < 0 {
		return true
	}
	for _, token := range []string{"AC1006", "AC1009"} {
		end := idx + 64
		if end > len(body) {
			end = len(body)
		}
		if bytes.Contains(body[idx:end], []byte(token)) {
			return false
		}
	}
	return true
}

// readSections drives the top-level state machine: repeated (0,
// "SECTION") / (2, name) / ... / (0, "ENDSEC") groups until (0, "EOF")
// or the stream ends (§4.G Section/entity state machine).
func (d *Drawing) readSections(it *pairIterator, o *Options) error {
	for {
		pair, ok, err := it.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if pair.Code != 0 {
			continue
		}
		switch pair.Str {
		case "EOF":
			return nil
		case "SECTION":
			if err := d.readOneSection(it, o); err != nil {
				return err
			}
		default:
			// Tolerate stray structural pairs between sections.
		}
	}
}

func (d *Drawing) readOneSection(it *pairIterator, o *Options) error {
	namePair, ok, err := it.next()
	if err != nil {
		return err
	}
	if !ok || namePair.Code != 2 {
		return &MalformedPairError{Offset: it.offset(), Code: 2, ValueExcerpt: "expected section name"}
	}
	switch namePair.Str {
	case "HEADER":
		h, err := readHeader(it, func(msg string) { d.addWarning(msg) })
		if err != nil {
			return err
		}
		d.Header = h
		// Pre-R2007 ASCII strings after the header are transcoded from
		// the resolved $DWGCODEPAGE unless the caller supplied one.
		if ar, ok := it.r.(*AsciiReader); ok && o.Encoding == nil && h.Version < VersionR2007 {
			ar.SetEncoding(CodePageEncoding(h.CodePage))
		}
	case "CLASSES":
		classes, err := readClasses(it)
		if err != nil {
			return err
		}
		d.Classes = classes
	case "TABLES":
		if err := d.readTables(it, o); err != nil {
			return err
		}
	case "BLOCKS":
		if err := d.readBlocks(it, o); err != nil {
			return err
		}
	case "ENTITIES":
		if err := d.readEntities(it, o); err != nil {
			return err
		}
	case "OBJECTS":
		if err := d.readObjects(it, o); err != nil {
			return err
		}
	case "THUMBNAILIMAGE":
		thumb, err := readThumbnail(it)
		if err != nil {
			return err
		}
		if !thumb.Valid {
			d.addWarning("dropped corrupt thumbnail image")
		} else {
			d.Thumbnail = thumb
		}
	default:
		if err := skipUnknownSection(it); err != nil {
			return err
		}
		d.addWarning("unknown section " + namePair.Str + " skipped")
	}
	return consumeEndsec(it)
}

func skipUnknownSection(it *pairIterator) error {
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || (peeked.Code == 0 && peeked.Str == "ENDSEC") {
			return nil
		}
		if _, _, err := it.next(); err != nil {
			return err
		}
	}
}

func consumeEndsec(it *pairIterator) error {
	peeked, ok, err := it.peek()
	if err != nil {
		return err
	}
	if ok && peeked.Code == 0 && peeked.Str == "ENDSEC" {
		_, _, err := it.next()
		return err
	}
	return nil
}

func (d *Drawing) readTables(it *pairIterator, o *Options) error {
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || peeked.Code != 0 {
			return nil
		}
		if peeked.Str == "ENDSEC" {
			return nil
		}
		if peeked.Str != "TABLE" {
			return nil
		}
		if _, _, err := it.next(); err != nil {
			return err
		}
		if err := d.readOneTable(it, o); err != nil {
			return err
		}
	}
}

func (d *Drawing) readOneTable(it *pairIterator, o *Options) error {
	tbl := &Table{}
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
		case 2:
			tbl.Name = pair.Str
		case 5:
			if h, err := pair.AsHandle(); err == nil {
				tbl.Handle = h
			}
		case 330:
			if h, err := pair.AsHandle(); err == nil {
				tbl.Owner = NewPointer(h)
			}
		case 70:
			tbl.MaxEntries = int32(pair.I16)
		}
	}

	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || peeked.Code != 0 {
			return nil
		}
		if peeked.Str == "ENDTAB" {
			if _, _, err := it.next(); err != nil {
				return err
			}
			if tbl.Name != "" {
				if existing, dup := d.Tables[tbl.Name]; dup {
					tbl.Records = append(existing.Records, tbl.Records...)
				} else {
					d.TableOrder = append(d.TableOrder, tbl.Name)
				}
				d.Tables[tbl.Name] = tbl
			}
			return nil
		}
		tag, _, err := it.next()
		if err != nil {
			return err
		}
		factory, known := tableRecordFactories[tag.Str]
		var rec TableRecord
		if known {
			rec = factory()
		} else {
			if o.DropUnknownEntities {
				if err := drainUntilBoundary(it); err != nil {
					return err
				}
				continue
			}
			rec = NewUnknownTableRecord(tag.Str)
		}
		if err := readTableRecordBody(it, rec); err != nil {
			return err
		}
		tbl.Records = append(tbl.Records, rec)
	}
}

func drainUntilBoundary(it *pairIterator) error {
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || peeked.Code == 0 {
			return nil
		}
		if _, _, err := it.next(); err != nil {
			return err
		}
	}
}

func (d *Drawing) readBlocks(it *pairIterator, o *Options) error {
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || peeked.Code != 0 {
			return nil
		}
		if peeked.Str == "ENDSEC" {
			return nil
		}
		if peeked.Str != "BLOCK" {
			return nil
		}
		if _, _, err := it.next(); err != nil {
			return err
		}
		b, err := readBlock(it, d, o)
		if err != nil {
			return err
		}
		d.Blocks = append(d.Blocks, b)
	}
}

func (d *Drawing) readEntities(it *pairIterator, o *Options) error {
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || peeked.Code != 0 {
			return nil
		}
		if peeked.Str == "ENDSEC" {
			return nil
		}
		tag, _, err := it.next()
		if err != nil {
			return err
		}
		_, known := entityFactories[tag.Str]
		if !known && o.DropUnknownEntities {
			if err := drainUntilBoundary(it); err != nil {
				return err
			}
			continue
		}
		e, err := newEntityForTag(tag.Str, o)
		if err != nil {
			return err
		}
		if err := readEntityBody(it, e, d, o.MaxExtensionDataDepth); err != nil {
			return err
		}
		d.Entities = append(d.Entities, e)
	}
}

func (d *Drawing) readObjects(it *pairIterator, o *Options) error {
	for {
		peeked, ok, err := it.peek()
		if err != nil {
			return err
		}
		if !ok || peeked.Code != 0 {
			return nil
		}
		if peeked.Str == "ENDSEC" {
			return nil
		}
		tag, _, err := it.next()
		if err != nil {
			return err
		}
		factory, known := objectFactories[tag.Str]
		var obj Object
		if known {
			obj = factory()
		} else {
			if o.DropUnknownEntities {
				if err := drainUntilBoundary(it); err != nil {
					return err
				}
				continue
			}
			obj = NewUnknownObject(tag.Str)
		}
		if err := readObjectBody(it, obj, d, o.MaxExtensionDataDepth); err != nil {
			return err
		}
		d.Objects = append(d.Objects, obj)
	}
}

// observeHandles folds every handle this drawing already carries into
// the tracker so that Save's two-pass assignment never collides with a
// handle read from the source file (§4.G Handle assignment).
func (d *Drawing) observeHandles() {
	for _, tbl := range d.Tables {
		d.handles.Observe(tbl.Handle)
		for _, r := range tbl.Records {
			d.handles.Observe(r.Data().Handle)
		}
	}
	for _, b := range d.Blocks {
		d.handles.Observe(b.Handle)
		d.handles.Observe(b.EndBlkHandle)
		for _, e := range b.Entities {
			d.handles.Observe(e.Data().Handle)
		}
	}
	for _, e := range d.Entities {
		d.handles.Observe(e.Data().Handle)
	}
	for _, o := range d.Objects {
		d.handles.Observe(o.Data().Handle)
	}
}

// forEachPointer visits every Pointer field this drawing carries:
// table/table-record/block owners, entity and object owners and
// reactors, the handful of entity-specific cross-references (Layer's
// plot-style/material, BlockRecord's layout handle, HATCH boundary
// paths' source objects), in that order. fixupPointers, Normalize's
// handle-sync pass, and Save's orphan-reparenting pass all walk the
// same set through this one traversal (§4.G Pointer fixup).
func (d *Drawing) forEachPointer(fn func(p *Pointer)) {
	for _, tbl := range d.Tables {
		fn(&tbl.Owner)
		for _, r := range tbl.Records {
			fn(&r.Data().Owner)
			switch rec := r.(type) {
			case *Layer:
				fn(&rec.PlotStyle)
				fn(&rec.Material)
			case *BlockRecord:
				fn(&rec.LayoutHandle)
			}
		}
	}
	for _, b := range d.Blocks {
		fn(&b.Owner)
		fn(&b.EndBlkOwner)
		for _, e := range b.Entities {
			forEachEntityPointer(e, fn)
		}
	}
	for _, e := range d.Entities {
		forEachEntityPointer(e, fn)
	}
	for _, o := range d.Objects {
		data := o.Data()
		fn(&data.Owner)
		for i := range data.Reactors {
			fn(&data.Reactors[i])
		}
	}
}

func forEachEntityPointer(e Entity, fn func(p *Pointer)) {
	data := e.Data()
	fn(&data.Owner)
	fn(&data.Material)
	fn(&data.PlotStyle)
	for i := range data.Reactors {
		fn(&data.Reactors[i])
	}
	if h, ok := e.(*Hatch); ok {
		for _, bp := range h.BoundaryPaths {
			for i := range bp.SourceHandles {
				fn(&bp.SourceHandles[i])
			}
		}
	}
}

// fixupPointers is the post-read pass that resolves every Pointer's
// stored handle to the in-memory value it names, where that value is
// present in this drawing (§4.G Pointer fixup). Unresolved pointers
// after this pass are dangling references, not errors.
func (d *Drawing) fixupPointers() {
	index := map[Handle]interface{}{}
	for _, tbl := range d.Tables {
		for _, r := range tbl.Records {
			index[r.Data().Handle] = r
		}
	}
	for _, b := range d.Blocks {
		index[b.Handle] = b
		for _, e := range b.Entities {
			index[e.Data().Handle] = e
		}
	}
	for _, e := range d.Entities {
		index[e.Data().Handle] = e
	}
	for _, o := range d.Objects {
		index[o.Data().Handle] = o
	}

	d.forEachPointer(func(p *Pointer) {
		if !p.IsSet() {
			return
		}
		if target, ok := index[p.Handle]; ok {
			p.Resolve(target)
		}
	})
}

// handleOfPointerTarget returns the handle belonging to a Pointer's
// resolved target, for the concrete kinds Pointer ever resolves to.
func handleOfPointerTarget(v interface{}) (Handle, bool) {
	switch t := v.(type) {
	case Entity:
		return t.Data().Handle, true
	case Object:
		return t.Data().Handle, true
	case TableRecord:
		return t.Data().Handle, true
	case *Block:
		return t.Handle, true
	default:
		return NoHandle, false
	}
}

// syncPointerHandles walks every Pointer field and, where it is
// already resolved to an in-memory target (built with PointerTo before
// that target had a handle, or resolved from the stream by
// fixupPointers), rewrites Handle to match the target's current handle.
// This is what keeps a Pointer internally consistent when its target's
// handle is assigned after the pointer itself was built (§4.G).
func (d *Drawing) syncPointerHandles() {
	d.forEachPointer(func(p *Pointer) {
		if p.resolved == nil {
			return
		}
		if h, ok := handleOfPointerTarget(p.resolved); ok {
			p.Handle = h
		}
	})
}

// Normalize inserts any required table entries a drawing is missing
// (layer "0", linetypes BYLAYER/BYBLOCK/CONTINUOUS, text style
// STANDARD, a default viewport), assigns fresh handles to anything
// that still lacks one and refreshes $HANDSEED, then re-synchronises
// every Pointer so none of them point at a stale handle. That last
// step matters because a Pointer built with PointerTo before its
// target was assigned a handle (or a Pointer loaded by handle whose
// target is only just receiving one now) would otherwise carry a
// Handle that no longer, or not yet, matches its target (§4.G). It is
// idempotent and is the pre-Save step a caller runs after building or
// mutating a Drawing by hand (§6, §8 property 6).
func (d *Drawing) Normalize() {
	d.ensureDefaults()
	if d.handles == nil {
		d.handles = NewHandleTracker(d.Header.HandleSeed)
	}
	assign := func(h *Handle) {
		if *h == NoHandle {
			*h = d.handles.Next()
		}
	}
	for _, tbl := range d.Tables {
		assign(&tbl.Handle)
		for _, r := range tbl.Records {
			assign(&r.Data().Handle)
		}
	}
	for _, b := range d.Blocks {
		assign(&b.Handle)
		assign(&b.EndBlkHandle)
		for _, e := range b.Entities {
			assign(&e.Data().Handle)
		}
	}
	for _, e := range d.Entities {
		assign(&e.Data().Handle)
	}
	for _, o := range d.Objects {
		assign(&o.Data().Handle)
	}
	d.Header.HandleSeed = d.handles.Seed()

	d.fixupPointers()
	d.syncPointerHandles()
}

// survivesAtVersion reports whether a Pointer's resolved target would
// still be written when saving at ver. An unresolved target (nil) is
// assumed to survive, since nothing here can reason about a dangling
// reference one way or the other.
func survivesAtVersion(target interface{}, ver Version) bool {
	switch t := target.(type) {
	case Entity:
		return ver >= t.MinVersion() && ver <= t.MaxVersion()
	case Object:
		return ver >= t.MinVersion() && ver <= t.MaxVersion()
	case TableRecord:
		return ver >= t.MinVersion() && ver <= t.MaxVersion()
	case *Block:
		return true
	default:
		return true
	}
}

// modelSpaceOwner returns a resolved Pointer at the BLOCK_RECORD named
// "*Model_Space", if this drawing has one and it survives at ver. An
// orphaned entity or object owner is rehomed here rather than left
// dangling (§4.E, §8 property 3).
func (d *Drawing) modelSpaceOwner(ver Version) Pointer {
	tbl := d.Tables["BLOCK_RECORD"]
	if tbl == nil {
		return Pointer{}
	}
	for _, r := range tbl.Records {
		if strings.EqualFold(r.Data().Name, "*Model_Space") && survivesAtVersion(r, ver) {
			p := NewPointer(r.Data().Handle)
			p.Resolve(r)
			return p
		}
	}
	return Pointer{}
}

// reparentOrphans runs right before Save/SaveBinary emit a single
// pair: writeEntity, writeTableRecord and writeObject each silently
// drop a record that falls outside ver's MinVersion/MaxVersion, and
// nothing about that drop is otherwise visible to whatever still
// points at the dropped record. This pass finds every such dangling
// Owner and rehomes it to model space when one survives, or clears it
// with a warning when there is none; reactor links and HATCH source
// objects pointing at a dropped record are simply removed, since there
// is nothing sensible to reparent a reactor to (§4.E, §8 property 3
// version-downgrade safety).
func (d *Drawing) reparentOrphans(ver Version) {
	modelSpace := d.modelSpaceOwner(ver)

	reparentOwner := func(p *Pointer, what string) {
		if !p.IsSet() || survivesAtVersion(p.Resolved(), ver) {
			return
		}
		if modelSpace.IsSet() {
			*p = modelSpace
			d.addWarning("reparented " + what + " owner to model space: its former owner is not written at this version")
		} else {
			*p = Pointer{}
			d.addWarning("cleared " + what + " owner: its former owner is not written at this version, and no model space block record is available to reparent to")
		}
	}
	dropDanglingReactors := func(reactors *[]Pointer, what string) {
		kept := (*reactors)[:0]
		for _, r := range *reactors {
			if r.IsSet() && !survivesAtVersion(r.Resolved(), ver) {
				d.addWarning("dropped a reactor on " + what + ": its target is not written at this version")
				continue
			}
			kept = append(kept, r)
		}
		*reactors = kept
	}
	dropDanglingSources := func(sources *[]Pointer) {
		kept := (*sources)[:0]
		for _, s := range *sources {
			if s.IsSet() && !survivesAtVersion(s.Resolved(), ver) {
				d.addWarning("dropped a HATCH boundary source object: its target is not written at this version")
				continue
			}
			kept = append(kept, s)
		}
		*sources = kept
	}

	for _, e := range d.Entities {
		data := e.Data()
		reparentOwner(&data.Owner, "entity "+e.TypeName())
		dropDanglingReactors(&data.Reactors, "entity "+e.TypeName())
		if h, ok := e.(*Hatch); ok {
			for _, bp := range h.BoundaryPaths {
				dropDanglingSources(&bp.SourceHandles)
			}
		}
	}
	for _, o := range d.Objects {
		data := o.Data()
		reparentOwner(&data.Owner, "object "+o.TypeName())
		dropDanglingReactors(&data.Reactors, "object "+o.TypeName())
	}
	for _, tbl := range d.Tables {
		for _, r := range tbl.Records {
			reparentOwner(&r.Data().Owner, "table record "+r.TypeName())
		}
	}
	for _, b := range d.Blocks {
		for _, e := range b.Entities {
			data := e.Data()
			reparentOwner(&data.Owner, "block entity "+e.TypeName())
			dropDanglingReactors(&data.Reactors, "block entity "+e.TypeName())
			if h, ok := e.(*Hatch); ok {
				for _, bp := range h.BoundaryPaths {
					dropDanglingSources(&bp.SourceHandles)
				}
			}
		}
	}
}

// Save writes the drawing as ASCII DXF at its Header's Version.
func (d *Drawing) Save(w io.Writer) error {
	d.Normalize()
	ver := d.Header.Version
	d.reparentOrphans(ver)
	aw := NewAsciiWriter(w, ver)
	if ver < VersionR2007 {
		aw.SetEncoding(CodePageEncoding(d.Header.CodePage))
	}
	return d.writeSections(aw, ver)
}

// SaveBinary writes the drawing in the binary encoding appropriate to
// its Header's Version (pre- or post-R13 framing), sentinel included.
func (d *Drawing) SaveBinary(w io.Writer) error {
	d.Normalize()
	ver := d.Header.Version
	d.reparentOrphans(ver)
	if err := WriteSentinel(w); err != nil {
		return err
	}
	bw := NewBinaryWriter(w, !ver.IsPreR13())
	return d.writeSections(bw, ver)
}

func (d *Drawing) writeSections(sink pairSink, ver Version) error {
	if err := writeSection(sink, "HEADER", func() error {
		return writeHeader(d.Header, ver, sink)
	}); err != nil {
		return err
	}
	if ver.IsAtLeast(VersionR13) && len(d.Classes) > 0 {
		if err := writeSection(sink, "CLASSES", func() error {
			return writeClasses(d.Classes, sink)
		}); err != nil {
			return err
		}
	}
	if err := writeSection(sink, "TABLES", func() error {
		return d.writeTables(sink, ver)
	}); err != nil {
		return err
	}
	if err := writeSection(sink, "BLOCKS", func() error {
		for _, b := range d.Blocks {
			if err := writeBlock(b, ver, sink); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	if err := writeSection(sink, "ENTITIES", func() error {
		for _, e := range d.Entities {
			if err := writeEntity(e, ver, sink); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	if ver.IsAtLeast(VersionR13) && len(d.Objects) > 0 {
		if err := writeSection(sink, "OBJECTS", func() error {
			for _, o := range d.Objects {
				if err := writeObject(o, ver, sink); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}
	if d.Thumbnail != nil && d.Thumbnail.Valid {
		if err := writeSection(sink, "THUMBNAILIMAGE", func() error {
			return writeThumbnail(d.Thumbnail, sink)
		}); err != nil {
			return err
		}
	}
	return sink.Emit(StringPair(0, "EOF"))
}

func writeSection(sink pairSink, name string, body func() error) error {
	if err := sink.Emit(StringPair(0, "SECTION")); err != nil {
		return err
	}
	if err := sink.Emit(StringPair(2, name)); err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	return sink.Emit(StringPair(0, "ENDSEC"))
}

func (d *Drawing) writeTables(sink pairSink, ver Version) error {
	order := d.TableOrder
	if len(order) == 0 {
		order = []string{"VPORT", "LTYPE", "LAYER", "STYLE", "VIEW", "UCS", "APPID", "DIMSTYLE", "BLOCK_RECORD"}
	}
	for _, name := range order {
		tbl := d.Tables[name]
		var records []TableRecord
		if tbl != nil {
			records = tbl.Records
		}
		if err := sink.Emit(StringPair(0, "TABLE")); err != nil {
			return err
		}
		if err := sink.Emit(StringPair(2, name)); err != nil {
			return err
		}
		if tbl != nil && tbl.Handle != NoHandle {
			if err := sink.Emit(HandlePair(5, tbl.Handle)); err != nil {
				return err
			}
		}
		if tbl != nil && tbl.Owner.IsSet() && ver.IsAtLeast(VersionR13) {
			if err := sink.Emit(HandlePair(330, tbl.Owner.Handle)); err != nil {
				return err
			}
		}
		if ver.IsAtLeast(VersionR13) {
			if err := sink.Emit(StringPair(100, "AcDbSymbolTable")); err != nil {
				return err
			}
		}
		if err := sink.Emit(ShortPair(70, int16(len(records)))); err != nil {
			return err
		}
		for _, r := range records {
			if err := writeTableRecord(r, ver, sink); err != nil {
				return err
			}
		}
		if err := sink.Emit(StringPair(0, "ENDTAB")); err != nil {
			return err
		}
	}
	return nil
}
