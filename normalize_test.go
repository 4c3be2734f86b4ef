// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "testing"

func TestNormalizeAssignsFreshHandlesOnly(t *testing.T) {
	d := NewDrawing()
	d.Entities = []Entity{
		&Line{EntityData: EntityData{Handle: 0x50}},
		&Line{},
	}
	d.Objects = []Object{&Dictionary{}}
	d.Tables["LAYER"] = &Table{Name: "LAYER", Records: []TableRecord{&Layer{}}}

	d.Normalize()

	if d.Entities[0].Data().Handle != 0x50 {
		t.Errorf("an already-set handle must not be reassigned, got %x", d.Entities[0].Data().Handle)
	}
	if d.Entities[1].Data().Handle == NoHandle {
		t.Error("an unset entity handle should have been assigned")
	}
	if d.Objects[0].Data().Handle == NoHandle {
		t.Error("an unset object handle should have been assigned")
	}
	if d.Tables["LAYER"].Records[0].Data().Handle == NoHandle {
		t.Error("an unset table record handle should have been assigned")
	}

	seen := map[Handle]bool{}
	for _, e := range d.Entities {
		h := e.Data().Handle
		if seen[h] {
			t.Fatalf("handle %x was assigned to more than one entity", h)
		}
		seen[h] = true
	}

	if d.Header.HandleSeed == 0 {
		t.Error("Normalize should have refreshed $HANDSEED")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	d := NewDrawing()
	d.Entities = []Entity{&Line{}}
	d.Normalize()
	first := d.Entities[0].Data().Handle
	d.Normalize()
	if d.Entities[0].Data().Handle != first {
		t.Error("calling Normalize twice should not reassign an already-set handle")
	}
}

func TestNormalizeInsertsRequiredDefaults(t *testing.T) {
	d := NewDrawing()
	d.Normalize()

	wantByName := func(tbl string, name string) {
		t.Helper()
		for _, r := range d.Tables[tbl].Records {
			if r.Data().Name == name {
				return
			}
		}
		t.Errorf("Normalize did not insert %s record %q", tbl, name)
	}
	wantByName("LAYER", "0")
	wantByName("LTYPE", "BYLAYER")
	wantByName("LTYPE", "BYBLOCK")
	wantByName("LTYPE", "CONTINUOUS")
	wantByName("STYLE", "STANDARD")
	wantByName("VPORT", "*Active")

	countLayer0 := 0
	d.Normalize()
	for _, r := range d.Tables["LAYER"].Records {
		if r.Data().Name == "0" {
			countLayer0++
		}
	}
	if countLayer0 != 1 {
		t.Errorf("calling Normalize twice duplicated the default LAYER \"0\" record: got %d", countLayer0)
	}
}

func TestNormalizeSyncsPointerHandleFromReference(t *testing.T) {
	d := NewDrawing()
	target := &Dictionary{}
	holder := &Dictionary{ObjectData: ObjectData{Owner: PointerTo(target)}}
	d.Objects = []Object{target, holder}

	if holder.Owner.Handle != NoHandle {
		t.Fatalf("PointerTo should not set a handle before target has one, got %x", holder.Owner.Handle)
	}

	d.Normalize()

	if target.Data().Handle == NoHandle {
		t.Fatal("target should have received a handle from Normalize")
	}
	if holder.Owner.Handle != target.Data().Handle {
		t.Errorf("holder.Owner.Handle = %x, want %x (target's assigned handle)", holder.Owner.Handle, target.Data().Handle)
	}
}
