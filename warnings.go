// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "github.com/saferwall/dxf/log"

// addWarning appends msg to d.Warnings unless the identical message is
// already present, the adapted form of the teacher's anomaly-
// accumulation pattern: a drawing surfaces every recoverable condition
// it tolerated while loading or saving, without growing unbounded on a file that
// repeats the same condition thousands of times.
func (d *Drawing) addWarning(msg string) {
	for _, w := range d.Warnings {
		if w == msg {
			return
		}
	}
	d.Warnings = append(d.Warnings, msg)
	if d.opts != nil && d.opts.Logger != nil {
		d.opts.Logger.Log(log.LevelWarn, msg)
	}
}
