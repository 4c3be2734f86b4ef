// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"strings"
	"testing"
)

func minimalHeaderAndLine(ver string) string {
	return "0\nSECTION\n2\nHEADER\n9\n$ACADVER\n1\n" + ver + "\n0\nENDSEC\n" +
		"0\nSECTION\n2\nENTITIES\n" +
		"0\nLINE\n8\n0\n10\n1.0\n20\n2.0\n30\n0.0\n11\n4.0\n21\n5.0\n31\n0.0\n" +
		"0\nENDSEC\n0\nEOF\n"
}

func TestDrawingLineRoundTrip(t *testing.T) {
	d, err := Load(strings.NewReader(minimalHeaderAndLine("AC1015")), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(d.Entities))
	}
	line, ok := d.Entities[0].(*Line)
	if !ok {
		t.Fatalf("entity is %T, want *Line", d.Entities[0])
	}
	if line.Start != [3]float64{1.0, 2.0, 0.0} || line.End != [3]float64{4.0, 5.0, 0.0} {
		t.Errorf("Line = %+v, unexpected coordinates", line)
	}

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	d2, err := Load(&buf, nil)
	if err != nil {
		t.Fatalf("reloading the saved output failed: %v", err)
	}
	if len(d2.Entities) != 1 {
		t.Fatalf("round trip: got %d entities, want 1", len(d2.Entities))
	}
	line2 := d2.Entities[0].(*Line)
	if line2.Start != line.Start || line2.End != line.End {
		t.Errorf("round-tripped Line = %+v, want %+v", line2, line)
	}
}

func TestDrawingUnicodeEscapeRoundTrip(t *testing.T) {
	// \U+00C4 is the ASCII escape form of capital A with diaeresis.
	content := "0\nSECTION\n2\nHEADER\n9\n$ACADVER\n1\nAC1015\n0\nENDSEC\n" +
		"0\nSECTION\n2\nENTITIES\n0\nTEXT\n8\n0\n1\nG\\U+00C4sten\n0\nENDSEC\n0\nEOF\n"
	d, err := Load(strings.NewReader(content), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	text, ok := d.Entities[0].(*Text)
	if !ok {
		t.Fatalf("entity is %T, want *Text", d.Entities[0])
	}
	if text.Value != "GÄsten" {
		t.Errorf("decoded text = %q, want %q", text.Value, "GÄsten")
	}

	// Pre-R2007, the escape form must come back on write.
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\\U+00C4")) {
		t.Error("pre-R2007 save should re-escape non-ASCII text")
	}

	// R2007+, the same text is written as raw UTF-8, not escaped.
	d.Header.Version = VersionR2007
	buf.Reset()
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save (R2007) failed: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("\\U+00C4")) {
		t.Error("R2007+ save should not escape, want raw UTF-8")
	}
	if !bytes.Contains(buf.Bytes(), []byte("Ä")) {
		t.Error("R2007+ save should contain the raw UTF-8 character")
	}
}

func TestDrawingBinarySentinelDetection(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSentinel(&buf); err != nil {
		t.Fatalf("WriteSentinel failed: %v", err)
	}
	if !sniffBinary(buf.Bytes()) {
		t.Error("a buffer starting with the binary sentinel should sniff as binary")
	}

	ascii := []byte("0\nSECTION\n2\nHEADER\n0\nENDSEC\n0\nEOF\n")
	if sniffBinary(ascii) {
		t.Error("plain ASCII content should not sniff as binary")
	}

	// A near-miss sentinel (missing the terminating NUL) must not be
	// mistaken for the real one and must fail loudly once decoded as
	// ASCII garbage instead.
	nearMiss := append([]byte("AutoCAD Binary DXF\r\n\x1a"), []byte("garbage")...)
	if sniffBinary(nearMiss) {
		t.Fatal("truncated sentinel must not sniff as binary")
	}
	if _, err := Load(bytes.NewReader(nearMiss), nil); err == nil {
		t.Error("loading near-miss sentinel content as ASCII should fail")
	}
}

func TestDrawingUnknownEntityThenLine(t *testing.T) {
	content := "0\nSECTION\n2\nHEADER\n9\n$ACADVER\n1\nAC1015\n0\nENDSEC\n" +
		"0\nSECTION\n2\nENTITIES\n" +
		"0\nFROBNICATOR\n8\n0\n1\nmystery\n" +
		"0\nLINE\n8\n0\n10\n1.0\n20\n1.0\n30\n0.0\n11\n2.0\n21\n2.0\n31\n0.0\n" +
		"0\nENDSEC\n0\nEOF\n"
	d, err := Load(strings.NewReader(content), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(d.Entities))
	}
	unk, ok := d.Entities[0].(*UnknownEntity)
	if !ok {
		t.Fatalf("first entity is %T, want *UnknownEntity", d.Entities[0])
	}
	if unk.TypeTag != "FROBNICATOR" {
		t.Errorf("TypeTag = %q, want FROBNICATOR", unk.TypeTag)
	}
	if _, ok := d.Entities[1].(*Line); !ok {
		t.Fatalf("second entity is %T, want *Line", d.Entities[1])
	}
}

func TestDrawingTooDeepExtensionDataFailsLoad(t *testing.T) {
	var body strings.Builder
	body.WriteString("0\nSECTION\n2\nHEADER\n9\n$ACADVER\n1\nAC1015\n0\nENDSEC\n")
	body.WriteString("0\nSECTION\n2\nENTITIES\n0\nLINE\n8\n0\n")
	for i := 0; i < 17; i++ {
		body.WriteString("102\n{G\n")
	}
	body.WriteString("10\n1.0\n20\n1.0\n30\n0.0\n0\nENDSEC\n0\nEOF\n")

	_, err := Load(strings.NewReader(body.String()), nil)
	if err != ErrExtensionDataTooDeep {
		t.Fatalf("expected ErrExtensionDataTooDeep, got %v", err)
	}
}

func TestDrawingVersionDowngradeDropsNewerEntities(t *testing.T) {
	d := NewDrawing()
	d.Header.Version = VersionR10
	d.Entities = []Entity{
		&Line{Start: [3]float64{0, 0, 0}, End: [3]float64{1, 1, 0}},
		&Ellipse{Center: [3]float64{2, 2, 0}}, // MinVersion R14, must drop at R10
	}

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save at R10 failed: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("ELLIPSE")) {
		t.Error("ELLIPSE (min version R14) must not appear when saving at R10")
	}

	d2, err := Load(&buf, nil)
	if err != nil {
		t.Fatalf("reloading downgraded output failed: %v", err)
	}
	if len(d2.Entities) != 1 {
		t.Fatalf("got %d entities after downgrade, want 1 (only LINE survives)", len(d2.Entities))
	}
	if _, ok := d2.Entities[0].(*Line); !ok {
		t.Fatalf("surviving entity is %T, want *Line", d2.Entities[0])
	}
}

func TestSaveReparentsOrphanedOwnerToModelSpace(t *testing.T) {
	d := NewDrawing()
	d.Header.Version = VersionR13
	d.Tables["BLOCK_RECORD"] = &Table{
		Name:    "BLOCK_RECORD",
		Records: []TableRecord{&BlockRecord{TableRecordData: TableRecordData{Name: "*Model_Space"}}},
	}
	ellipse := &Ellipse{Center: [3]float64{2, 2, 0}} // MinVersion R14, dropped at R13
	line := &Line{
		Start:      [3]float64{0, 0, 0},
		End:        [3]float64{1, 1, 0},
		EntityData: EntityData{Owner: PointerTo(ellipse)},
	}
	d.Entities = []Entity{ellipse, line}

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("ELLIPSE")) {
		t.Error("ELLIPSE (min version R14) must not appear when saving at R13")
	}

	reparented := false
	for _, w := range d.Warnings {
		if strings.Contains(w, "reparented") {
			reparented = true
		}
	}
	if !reparented {
		t.Errorf("Warnings = %v, want a reparenting warning", d.Warnings)
	}

	d2, err := Load(&buf, nil)
	if err != nil {
		t.Fatalf("reloading output failed: %v", err)
	}
	if len(d2.Entities) != 1 {
		t.Fatalf("got %d entities after downgrade, want 1 (only LINE survives)", len(d2.Entities))
	}
	line2, ok := d2.Entities[0].(*Line)
	if !ok {
		t.Fatalf("surviving entity is %T, want *Line", d2.Entities[0])
	}
	if !line2.Owner.IsSet() {
		t.Fatal("LINE's owner should have been rehomed to model space, not left unset")
	}
	owner, ok := line2.Owner.Resolved().(*BlockRecord)
	if !ok {
		t.Fatalf("LINE's owner resolved to %T, want *BlockRecord", line2.Owner.Resolved())
	}
	if owner.Data().Name != "*Model_Space" {
		t.Errorf("LINE's owner is block record %q, want *Model_Space", owner.Data().Name)
	}
}

func TestSaveClearsOrphanedOwnerWhenNoModelSpace(t *testing.T) {
	d := NewDrawing()
	d.Header.Version = VersionR13
	layout := &Layout{} // MinVersion R2000, dropped at R13
	dict := &Dictionary{ObjectData: ObjectData{Owner: PointerTo(layout)}}
	d.Objects = []Object{layout, dict}

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("LAYOUT")) {
		t.Error("LAYOUT (min version R2000) must not appear when saving at R13")
	}

	cleared := false
	for _, w := range d.Warnings {
		if strings.Contains(w, "cleared") {
			cleared = true
		}
	}
	if !cleared {
		t.Errorf("Warnings = %v, want a cleared-owner warning", d.Warnings)
	}

	d2, err := Load(&buf, nil)
	if err != nil {
		t.Fatalf("reloading output failed: %v", err)
	}
	if len(d2.Objects) != 1 {
		t.Fatalf("got %d objects after downgrade, want 1 (only DICTIONARY survives)", len(d2.Objects))
	}
	dict2, ok := d2.Objects[0].(*Dictionary)
	if !ok {
		t.Fatalf("surviving object is %T, want *Dictionary", d2.Objects[0])
	}
	if dict2.Owner.IsSet() {
		t.Error("DICTIONARY's dangling owner should have been cleared, not written as a dangling handle")
	}
}
