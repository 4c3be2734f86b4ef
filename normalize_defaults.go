// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// ensureTableRecord appends rec to d.Tables[tableName] only if no
// existing record in that table already carries name, so repeated
// calls (Normalize called twice, §8 property 6) never duplicate a
// default entry.
func (d *Drawing) ensureTableRecord(tableName, name string, rec TableRecord) {
	tbl := d.Tables[tableName]
	if tbl == nil {
		tbl = &Table{Name: tableName}
		d.Tables[tableName] = tbl
		d.TableOrder = append(d.TableOrder, tableName)
	}
	for _, r := range tbl.Records {
		if r.Data().Name == name {
			return
		}
	}
	tbl.Records = append(tbl.Records, rec)
}

// ensureDefaults inserts every table entry a drawing is documented to
// always carry once normalized: layer "0", the three builtin
// linetypes, text style "STANDARD", and a default active viewport
// (§6 "normalize() ... inserts required defaults"). Each insertion is
// keyed on name, so running this twice is a no-op the second time.
func (d *Drawing) ensureDefaults() {
	d.ensureTableRecord("LAYER", "0", &Layer{
		TableRecordData: TableRecordData{Name: "0"},
		Color:           ColorFromWire(7),
		Linetype:        "CONTINUOUS",
	})
	for _, name := range []string{"BYLAYER", "BYBLOCK", "CONTINUOUS"} {
		d.ensureTableRecord("LTYPE", name, &LType{
			TableRecordData: TableRecordData{Name: name},
			Description:     "Solid line",
		})
	}
	d.ensureTableRecord("STYLE", "STANDARD", &Style{
		TableRecordData: TableRecordData{Name: "STANDARD"},
		WidthFactor:     1.0,
		FontFile:        "txt.shx",
	})
	d.ensureTableRecord("VPORT", "*Active", &VPort{
		TableRecordData: TableRecordData{Name: "*Active"},
		UpperRight:      [2]float64{1.0, 1.0},
		Height:          1.0,
		AspectRatio:     1.0,
	})
}
