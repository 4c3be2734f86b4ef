// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Version identifies an AutoCAD drawing database version. Ordering is
// total and comparable: R10 < R11 < ... < R2018 (§4.B Version enum).
type Version int

// Supported versions, R10 through R2018.
const (
	VersionR10 Version = iota
	VersionR11
	VersionR12
	VersionR13
	VersionR14
	VersionR2000
	VersionR2004
	VersionR2007
	VersionR2010
	VersionR2013
	VersionR2018
)

// versionNames maps each version to its canonical $ACADVER on-wire
// string. Pre-R13 releases (R10, R11, R12) predate handle-based
// cross referencing and CLASSES/OBJECTS sections entirely.
var versionNames = map[Version]string{
	VersionR10:   "AC1006",
	VersionR11:   "AC1009",
	VersionR12:   "AC1009",
	VersionR13:   "AC1012",
	VersionR14:   "AC1014",
	VersionR2000: "AC1015",
	VersionR2004: "AC1018",
	VersionR2007: "AC1021",
	VersionR2010: "AC1024",
	VersionR2013: "AC1027",
	VersionR2018: "AC1032",
}

var versionOrder = []Version{
	VersionR10, VersionR11, VersionR12, VersionR13, VersionR14,
	VersionR2000, VersionR2004, VersionR2007, VersionR2010,
	VersionR2013, VersionR2018,
}

// versionFromName resolves AC1009 to R12, the later of the two
// releases that share that wire token, since R12 drawings are far
// more common in the wild than R11.
var versionFromName = map[string]Version{
	"AC1006": VersionR10,
	"AC1009": VersionR12,
	"AC1012": VersionR13,
	"AC1014": VersionR14,
	"AC1015": VersionR2000,
	"AC1018": VersionR2004,
	"AC1021": VersionR2007,
	"AC1024": VersionR2010,
	"AC1027": VersionR2013,
	"AC1032": VersionR2018,
}

// String returns the $ACADVER wire token for v.
func (v Version) String() string {
	if s, ok := versionNames[v]; ok {
		return s
	}
	return "UNKNOWN"
}

// VersionFromWire resolves an $ACADVER string to a Version. Unknown
// strings fall back to the newest known version rather than failing,
// per the library-wide fallback-on-unknown policy (§4.B, §9).
func VersionFromWire(s string) Version {
	if v, ok := versionFromName[s]; ok {
		return v
	}
	return VersionR2018
}

// IsAtLeast reports whether v is the same as or newer than other.
func (v Version) IsAtLeast(other Version) bool {
	return v >= other
}

// IsPreR13 reports whether v predates the AC1012 (R13) database
// format change that introduced default handles, CLASSES, and
// OBJECTS (§4.G Section ordering).
func (v Version) IsPreR13() bool {
	return v < VersionR13
}

// Valid reports whether v is one of the eleven supported releases.
func (v Version) Valid() bool {
	_, ok := versionNames[v]
	return ok
}

// versionRange expresses the (min, max) range a field-table entry or
// an entire entity variant is gated on (§4.B). Both bounds are
// inclusive; always, from and upTo fill in the open end with
// VersionR10 or VersionR2018, and a zero-value Max is not treated
// specially by contains.
type versionRange struct {
	Min Version
	Max Version
}

// always is the unbounded version range: every supported version.
var always = versionRange{Min: VersionR10, Max: VersionR2018}

// from builds a range with no upper bound.
func from(min Version) versionRange {
	return versionRange{Min: min, Max: VersionR2018}
}

// upTo builds a range with no lower bound.
func upTo(max Version) versionRange {
	return versionRange{Min: VersionR10, Max: max}
}

// contains reports whether v falls within the range, inclusive.
func (r versionRange) contains(v Version) bool {
	return v >= r.Min && v <= r.Max
}
